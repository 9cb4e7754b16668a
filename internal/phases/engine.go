package phases

import (
	"fmt"
	"math"
	"time"

	"github.com/pvidovic/estima/internal/config"
	"github.com/pvidovic/estima/internal/domain"
)

// Engine owns the per-project phase instances and turns the resolved
// configuration plus the feature list into man-day and cost figures.
// All operations are plain synchronous calls; the engine never mutates
// the configuration, it only reads it through the resolver.
type Engine struct {
	resolver *config.Resolver
	defs     []domain.PhaseDefinition

	instances []*domain.PhaseInstance
	byID      map[string]*domain.PhaseInstance

	selected map[domain.Role]string
	features []domain.Feature
	coverage float64
}

// NewEngine builds an engine over the given resolver and ordered phase
// definitions, with empty instances until Sync is called.
func NewEngine(resolver *config.Resolver, defs []domain.PhaseDefinition) *Engine {
	return &Engine{
		resolver: resolver,
		defs:     defs,
		selected: make(map[domain.Role]string),
		byID:     make(map[string]*domain.PhaseInstance),
	}
}

// Sync (re)builds one instance per definition, preferring stored state
// over definition defaults, then derives the development phase from the
// feature list. Stored entries for unknown phase ids are dropped.
func (e *Engine) Sync(stored map[string]*domain.PhaseInstance, features []domain.Feature, coverage float64) {
	e.instances = e.instances[:0]
	e.byID = make(map[string]*domain.PhaseInstance, len(e.defs))

	for _, def := range e.defs {
		var inst *domain.PhaseInstance
		if s, ok := stored[def.ID]; ok && s != nil {
			inst = s.Clone()
		} else {
			inst = &domain.PhaseInstance{
				ManDays: 0,
				Effort:  def.DefaultEffort,
			}
		}
		inst.ID = def.ID
		inst.Name = def.Name
		inst.Calculated = def.Calculated

		e.instances = append(e.instances, inst)
		e.byID[def.ID] = inst
	}

	e.features = features
	e.coverage = coverage
	e.CalculateDevelopmentPhase()
}

// SetFeatures replaces the feature list and coverage, then re-derives the
// development phase.
func (e *Engine) SetFeatures(features []domain.Feature, coverage float64) {
	e.features = features
	e.coverage = coverage
	e.CalculateDevelopmentPhase()
}

// Features returns the current feature list.
func (e *Engine) Features() []domain.Feature {
	return e.features
}

// Coverage returns the current coverage man-days.
func (e *Engine) Coverage() float64 {
	return e.coverage
}

// CalculateDevelopmentPhase recomputes the development phase's man-days:
// the feature total plus coverage, rounded to one decimal. This is the
// only phase whose man-days are never user-editable.
func (e *Engine) CalculateDevelopmentPhase() {
	dev, ok := e.byID[domain.DevelopmentPhaseID]
	if !ok {
		return
	}
	total := e.coverage
	for _, f := range e.features {
		total += f.ManDays
	}
	dev.ManDays = math.Round(total*10) / 10
	dev.LastModified = time.Now().UTC()
}

// Instances returns the ordered phase instances.
func (e *Engine) Instances() []*domain.PhaseInstance {
	return e.instances
}

// Phase looks up an instance by phase id.
func (e *Engine) Phase(id string) (*domain.PhaseInstance, bool) {
	inst, ok := e.byID[id]
	return inst, ok
}

// SetManDays writes a phase's man-days. The calculated development phase
// rejects the write; values are stored as given, never clamped.
func (e *Engine) SetManDays(id string, manDays float64) error {
	inst, ok := e.byID[id]
	if !ok {
		return fmt.Errorf("setting man-days: unknown phase %q", id)
	}
	if inst.Calculated {
		return fmt.Errorf("setting man-days: phase %q is derived from the feature list", id)
	}
	inst.ManDays = manDays
	inst.LastModified = time.Now().UTC()
	return nil
}

// SetEffort writes one role's effort percentage on a phase. Percentages
// are independently editable and never normalized to sum to 100.
func (e *Engine) SetEffort(id string, role domain.Role, pct float64) error {
	inst, ok := e.byID[id]
	if !ok {
		return fmt.Errorf("setting effort: unknown phase %q", id)
	}
	if !domain.ValidRoles[string(role)] {
		return fmt.Errorf("setting effort: unknown role %q", role)
	}
	inst.Effort.Set(role, pct)
	inst.LastModified = time.Now().UTC()
	return nil
}

// AssignResources replaces a phase's assigned resource ids.
func (e *Engine) AssignResources(id string, resourceIDs []string) error {
	inst, ok := e.byID[id]
	if !ok {
		return fmt.Errorf("assigning resources: unknown phase %q", id)
	}
	inst.AssignedResources = resourceIDs
	inst.LastModified = time.Now().UTC()
	return nil
}

// SelectSupplier picks the aggregate supplier billed for a role across
// all phases (the development G2 special case ignores it). An empty id
// clears the selection.
func (e *Engine) SelectSupplier(role domain.Role, resourceID string) {
	if resourceID == "" {
		delete(e.selected, role)
		return
	}
	e.selected[role] = resourceID
}

// SelectedSuppliers returns the role-to-resource selection map.
func (e *Engine) SelectedSuppliers() map[domain.Role]string {
	return e.selected
}

// ResourceRate returns the aggregate day rate for a role: the selected
// supplier's real rate, falling back to its official rate, or the role's
// configured default rate when nothing is selected.
func (e *Engine) ResourceRate(role domain.Role) float64 {
	if id, ok := e.selected[role]; ok {
		return e.resolver.ResourceRate(id)
	}
	params := e.resolver.Resolve().CalculationParams
	return params.Float(domain.DefaultRateParam(role), 0)
}

// ManDaysByRole splits a phase's total man-days across the four roles by
// effort percentage. Pure; rounding happens at the cost/display stage.
func ManDaysByRole(totalManDays float64, effort domain.RoleValues) domain.RoleValues {
	return domain.RoleValues{
		G1: totalManDays * effort.G1 / 100,
		G2: totalManDays * effort.G2 / 100,
		TA: totalManDays * effort.TA / 100,
		PM: totalManDays * effort.PM / 100,
	}
}

// CostByRole computes a phase's cost split. Every phase bills each role's
// man-days at the aggregate role rate, except development G2: there each
// feature is billed at its own assigned supplier's rate, so changing the
// globally selected G2 supplier never moves the development G2 cost.
func (e *Engine) CostByRole(id string) domain.RoleValues {
	inst, ok := e.byID[id]
	if !ok {
		return domain.RoleValues{}
	}

	md := ManDaysByRole(inst.ManDays, inst.Effort)
	var cost domain.RoleValues
	for _, role := range domain.Roles {
		cost.Set(role, math.Round(md.Get(role)*e.ResourceRate(role)))
	}

	if inst.ID == domain.DevelopmentPhaseID {
		g2 := 0.0
		for _, f := range e.features {
			g2 += f.ManDays * e.resolver.ResourceRate(f.Supplier) * (inst.Effort.G2 / 100)
		}
		cost.G2 = math.Round(g2)
	}
	return cost
}

// ProjectTotals is the cross-phase sum of man-days and the two per-role
// splits.
type ProjectTotals struct {
	ManDays       float64
	ManDaysByRole domain.RoleValues
	CostByRole    domain.RoleValues
}

// Totals sums man-days and the per-role splits across all phases, and
// refreshes each instance's stored total cost along the way.
func (e *Engine) Totals() ProjectTotals {
	var t ProjectTotals
	for _, inst := range e.instances {
		t.ManDays += inst.ManDays
		t.ManDaysByRole.Add(ManDaysByRole(inst.ManDays, inst.Effort))

		cost := e.CostByRole(inst.ID)
		inst.Cost = cost.Total()
		t.CostByRole.Add(cost)
	}
	return t
}

// TotalProjectCost sums all phase costs.
func (e *Engine) TotalProjectCost() float64 {
	return e.Totals().CostByRole.Total()
}

// TotalProjectManDays sums all phase man-days.
func (e *Engine) TotalProjectManDays() float64 {
	return e.Totals().ManDays
}
