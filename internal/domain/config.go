package domain

// GlobalConfig is the installation-wide configuration: one per process,
// mutated only by explicit global-scope actions, persisted externally.
type GlobalConfig struct {
	Suppliers         []ResourceEntry   `json:"suppliers"`
	InternalResources []ResourceEntry   `json:"internalResources"`
	Categories        []Category        `json:"categories"`
	CalculationParams CalculationParams `json:"calculationParams"`
}

// Normalize replaces nil sections with empty ones so merge code never has
// to distinguish a missing collection from an empty one.
func (g *GlobalConfig) Normalize() {
	if g.Suppliers == nil {
		g.Suppliers = []ResourceEntry{}
	}
	if g.InternalResources == nil {
		g.InternalResources = []ResourceEntry{}
	}
	if g.Categories == nil {
		g.Categories = []Category{}
	}
	if g.CalculationParams == nil {
		g.CalculationParams = CalculationParams{}
	}
}

// Clone deep-copies the configuration.
func (g *GlobalConfig) Clone() *GlobalConfig {
	return &GlobalConfig{
		Suppliers:         CloneResourceEntries(g.Suppliers),
		InternalResources: CloneResourceEntries(g.InternalResources),
		Categories:        CloneCategories(g.Categories),
		CalculationParams: g.CalculationParams.Clone(),
	}
}

// ProjectOverrides holds only the deltas scoped to one project: additions,
// field overrides, and inactive-status soft deletes.
type ProjectOverrides struct {
	Suppliers         []ResourceEntry   `json:"suppliers"`
	InternalResources []ResourceEntry   `json:"internalResources"`
	Categories        []Category        `json:"categories"`
	CalculationParams CalculationParams `json:"calculationParams"`
}

// ProjectConfig carries the project's resolved snapshot at creation time
// plus the override set. Older persisted projects lack ProjectOverrides
// entirely; a nil pointer marks that legacy shape for migration.
type ProjectConfig struct {
	Suppliers         []ResourceEntry   `json:"suppliers"`
	InternalResources []ResourceEntry   `json:"internalResources"`
	Categories        []Category        `json:"categories"`
	CalculationParams CalculationParams `json:"calculationParams"`
	ProjectOverrides  *ProjectOverrides `json:"projectOverrides,omitempty"`
}

// Normalize replaces nil sections with empty ones. The ProjectOverrides
// pointer is left alone: nil there is meaningful (legacy shape).
func (p *ProjectConfig) Normalize() {
	if p.Suppliers == nil {
		p.Suppliers = []ResourceEntry{}
	}
	if p.InternalResources == nil {
		p.InternalResources = []ResourceEntry{}
	}
	if p.Categories == nil {
		p.Categories = []Category{}
	}
	if p.CalculationParams == nil {
		p.CalculationParams = CalculationParams{}
	}
	if p.ProjectOverrides != nil {
		o := p.ProjectOverrides
		if o.Suppliers == nil {
			o.Suppliers = []ResourceEntry{}
		}
		if o.InternalResources == nil {
			o.InternalResources = []ResourceEntry{}
		}
		if o.Categories == nil {
			o.Categories = []Category{}
		}
		if o.CalculationParams == nil {
			o.CalculationParams = CalculationParams{}
		}
	}
}

// ResolvedConfig is the effective per-project view produced by the
// resolver: global defaults combined with project additions and overrides,
// inactive items dropped. Callers treat it as read-only.
type ResolvedConfig struct {
	Suppliers         []ResourceEntry
	InternalResources []ResourceEntry
	Categories        []Category
	CalculationParams CalculationParams
}
