package config

import (
	"fmt"

	"github.com/pvidovic/estima/internal/domain"
)

// FindResource looks up a supplier or internal resource by id in the
// resolved view.
func (r *Resolver) FindResource(kind domain.CollectionKind, id string) (domain.ResourceEntry, bool) {
	res := r.Resolve()
	var list []domain.ResourceEntry
	if kind == domain.CollectionSuppliers {
		list = res.Suppliers
	} else {
		list = res.InternalResources
	}
	for _, e := range list {
		if e.ID == id {
			return e, true
		}
	}
	return domain.ResourceEntry{}, false
}

// FindCategory looks up a category by id in the resolved view.
func (r *Resolver) FindCategory(id string) (domain.Category, bool) {
	for _, c := range r.Resolve().Categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

// Validate reports whether an id exists in the given resolved collection.
func (r *Resolver) Validate(kind domain.CollectionKind, id string) bool {
	if kind == domain.CollectionCategories {
		_, ok := r.FindCategory(id)
		return ok
	}
	_, ok := r.FindResource(kind, id)
	return ok
}

// DisplayName renders an id for display. Suppliers are tagged External,
// internal resources Internal; categories use their plain name. Unknown
// ids yield a placeholder instead of an error.
func (r *Resolver) DisplayName(kind domain.CollectionKind, id string) string {
	switch kind {
	case domain.CollectionSuppliers:
		if e, ok := r.FindResource(kind, id); ok {
			return fmt.Sprintf("%s (External)", e.Name)
		}
	case domain.CollectionInternalResources:
		if e, ok := r.FindResource(kind, id); ok {
			return fmt.Sprintf("%s (Internal)", e.Name)
		}
	case domain.CollectionCategories:
		if c, ok := r.FindCategory(id); ok {
			return c.Name
		}
	}
	return fmt.Sprintf("Unknown %s (%s)", kind.Label(), id)
}

// ResourceRate returns the billable day rate for a resource id, searching
// suppliers first, then internal resources: RealRate when set, else
// OfficialRate, else 0 for unknown ids.
func (r *Resolver) ResourceRate(id string) float64 {
	e, ok := r.FindResource(domain.CollectionSuppliers, id)
	if !ok {
		e, ok = r.FindResource(domain.CollectionInternalResources, id)
	}
	if !ok {
		return 0
	}
	if e.RealRate > 0 {
		return e.RealRate
	}
	return e.OfficialRate
}

// CollectionStats counts the provenance of a resolved collection's items.
type CollectionStats struct {
	Global          int `json:"global"`
	ProjectSpecific int `json:"projectSpecific"`
	Overridden      int `json:"overridden"`
}

// Total is the number of items in the resolved collection.
func (s CollectionStats) Total() int {
	return s.Global + s.ProjectSpecific + s.Overridden
}

// ConfigStats summarizes all three collections for status displays.
type ConfigStats struct {
	Suppliers         CollectionStats `json:"suppliers"`
	InternalResources CollectionStats `json:"internalResources"`
	Categories        CollectionStats `json:"categories"`
}

// Stats classifies every resolved item into exactly one bucket:
// overridden beats project-specific beats global.
func (r *Resolver) Stats() ConfigStats {
	res := r.Resolve()
	var st ConfigStats
	st.Suppliers = resourceStats(res.Suppliers)
	st.InternalResources = resourceStats(res.InternalResources)
	for _, c := range res.Categories {
		switch {
		case c.IsOverridden:
			st.Categories.Overridden++
		case c.IsProjectSpecific:
			st.Categories.ProjectSpecific++
		default:
			st.Categories.Global++
		}
	}
	return st
}

func resourceStats(list []domain.ResourceEntry) CollectionStats {
	var s CollectionStats
	for _, e := range list {
		switch {
		case e.IsOverridden:
			s.Overridden++
		case e.IsProjectSpecific:
			s.ProjectSpecific++
		default:
			s.Global++
		}
	}
	return s
}

// InitializeProjectConfig builds a fresh project configuration: a deep
// clone of the four global collections plus an empty override set.
func InitializeProjectConfig(g *domain.GlobalConfig) *domain.ProjectConfig {
	c := g.Clone()
	return &domain.ProjectConfig{
		Suppliers:         c.Suppliers,
		InternalResources: c.InternalResources,
		Categories:        c.Categories,
		CalculationParams: c.CalculationParams,
		ProjectOverrides: &domain.ProjectOverrides{
			Suppliers:         []domain.ResourceEntry{},
			InternalResources: []domain.ResourceEntry{},
			Categories:        []domain.Category{},
			CalculationParams: domain.CalculationParams{},
		},
	}
}

// MigrateProjectConfig upgrades a legacy project shape that predates the
// override set: the flat collections are kept as-is, an empty override set
// is attached, and any item differing from the current global copy (or
// absent from it) is marked project-specific.
func MigrateProjectConfig(p *domain.ProjectConfig, g *domain.GlobalConfig) {
	if p.ProjectOverrides != nil {
		return
	}
	p.Normalize()
	p.ProjectOverrides = &domain.ProjectOverrides{
		Suppliers:         []domain.ResourceEntry{},
		InternalResources: []domain.ResourceEntry{},
		Categories:        []domain.Category{},
		CalculationParams: domain.CalculationParams{},
	}

	markSpecificResources(p.Suppliers, g.Suppliers)
	markSpecificResources(p.InternalResources, g.InternalResources)
	markSpecificCategories(p.Categories, g.Categories)
}

func markSpecificResources(project, global []domain.ResourceEntry) {
	for i := range project {
		matched := false
		for _, ge := range global {
			if ge.ID == project[i].ID {
				matched = domain.EqualResourceEntry(ge, project[i])
				break
			}
		}
		if !matched {
			project[i].IsProjectSpecific = true
			project[i].IsGlobal = false
		}
	}
}

func markSpecificCategories(project, global []domain.Category) {
	for i := range project {
		matched := false
		for _, gc := range global {
			if gc.ID == project[i].ID {
				matched = domain.EqualCategory(gc, project[i])
				break
			}
		}
		if !matched {
			project[i].IsProjectSpecific = true
			project[i].IsGlobal = false
		}
	}
}
