package domain

import "time"

// DevelopmentPhaseID is the one phase whose man-days are derived from the
// feature list instead of edited by the user.
const DevelopmentPhaseID = "development"

// RoleValues holds one number per resource role: an effort distribution
// in percent, a man-day split, or a cost split depending on context.
type RoleValues struct {
	G1 float64 `json:"G1" yaml:"G1"`
	G2 float64 `json:"G2" yaml:"G2"`
	TA float64 `json:"TA" yaml:"TA"`
	PM float64 `json:"PM" yaml:"PM"`
}

// Get returns the value for a role; unknown roles yield 0.
func (v RoleValues) Get(r Role) float64 {
	switch r {
	case RoleG1:
		return v.G1
	case RoleG2:
		return v.G2
	case RoleTA:
		return v.TA
	case RolePM:
		return v.PM
	default:
		return 0
	}
}

// Set writes the value for a role. Unknown roles are ignored.
func (v *RoleValues) Set(r Role, val float64) {
	switch r {
	case RoleG1:
		v.G1 = val
	case RoleG2:
		v.G2 = val
	case RoleTA:
		v.TA = val
	case RolePM:
		v.PM = val
	}
}

// Add accumulates another split into this one.
func (v *RoleValues) Add(o RoleValues) {
	v.G1 += o.G1
	v.G2 += o.G2
	v.TA += o.TA
	v.PM += o.PM
}

// Total sums the four values.
func (v RoleValues) Total() float64 {
	return v.G1 + v.G2 + v.TA + v.PM
}

// PhaseDefinition is the static description of a phase, loaded once.
type PhaseDefinition struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Type          string     `json:"type" yaml:"type"`
	DefaultEffort RoleValues `json:"defaultEffort" yaml:"defaultEffort"`
	Editable      bool       `json:"editable" yaml:"editable"`
	Calculated    bool       `json:"calculated,omitempty" yaml:"calculated,omitempty"`
}

// PhaseInstance is the live per-project state of one phase.
type PhaseInstance struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	ManDays           float64    `json:"manDays"`
	Effort            RoleValues `json:"effort"`
	AssignedResources []string   `json:"assignedResources,omitempty"`
	Cost              float64    `json:"cost"`
	LastModified      time.Time  `json:"lastModified"`
	Calculated        bool       `json:"calculated,omitempty"`
}

// Clone returns an independent copy of the instance.
func (p *PhaseInstance) Clone() *PhaseInstance {
	out := *p
	if p.AssignedResources != nil {
		out.AssignedResources = make([]string, len(p.AssignedResources))
		copy(out.AssignedResources, p.AssignedResources)
	}
	return &out
}

// Feature is an estimated unit of scope, consumed read-only. Supplier is
// the id of the resource the feature's development is billed against.
type Feature struct {
	ID       string  `json:"id"`
	ManDays  float64 `json:"manDays"`
	Supplier string  `json:"supplier"`
}

// ProjectDocument is the persisted editing session for one project:
// its configuration snapshot plus the live phase/feature state.
type ProjectDocument struct {
	Name              string                    `json:"name"`
	Config            ProjectConfig             `json:"config"`
	Phases            map[string]*PhaseInstance `json:"phases,omitempty"`
	Features          []Feature                 `json:"features,omitempty"`
	Coverage          float64                   `json:"coverage,omitempty"`
	SelectedSuppliers map[Role]string           `json:"selectedSuppliers,omitempty"`
}
