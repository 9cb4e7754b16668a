package config

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pvidovic/estima/internal/domain"
)

// cacheKey identifies one exact (global, project) input pair. Revision
// counters replace content hashing: cheaper, and exact by construction.
type cacheKey struct {
	global  uint64
	project uint64
}

// Resolver merges the shared global configuration with one project's
// snapshot and overrides into an effective view. Resolution is a pure
// function of its two inputs and is memoized; every mutator invalidates
// the memo unconditionally before returning, so a write is fully visible
// to the very next read.
type Resolver struct {
	store   *Store
	project *domain.ProjectConfig

	projectRev uint64
	cache      *domain.ResolvedConfig
	key        cacheKey
	cached     bool
}

// NewResolver builds a resolver for one project against the shared store.
// A nil project gets a fresh snapshot of the global configuration; legacy
// project shapes lacking an override set are migrated in place.
func NewResolver(store *Store, project *domain.ProjectConfig) *Resolver {
	if project == nil {
		project = InitializeProjectConfig(store.Global())
	}
	project.Normalize()
	if project.ProjectOverrides == nil {
		MigrateProjectConfig(project, store.Global())
	}
	return &Resolver{store: store, project: project}
}

// Project returns the underlying project configuration (snapshot plus
// overrides), e.g. for persistence.
func (r *Resolver) Project() *domain.ProjectConfig {
	return r.project
}

// Resolve returns the effective configuration for this project. Two calls
// without an intervening mutation return the same memoized result.
func (r *Resolver) Resolve() *domain.ResolvedConfig {
	key := cacheKey{global: r.store.Revision(), project: r.projectRev}
	if r.cached && key == r.key {
		return r.cache
	}

	g := r.store.Global()
	p := r.project
	o := p.ProjectOverrides

	res := &domain.ResolvedConfig{
		Suppliers:         mergeResources(g.Suppliers, p.Suppliers, o.Suppliers),
		InternalResources: mergeResources(g.InternalResources, p.InternalResources, o.InternalResources),
		Categories:        mergeCategories(g.Categories, p.Categories, o.Categories),
		CalculationParams: domain.MergeCalculationParams(g.CalculationParams, p.CalculationParams, o.CalculationParams),
	}

	r.cache, r.key, r.cached = res, key, true
	return res
}

// mergeResources applies the per-collection merge: global base, then
// project-specific additions, then overrides, then the inactive filter.
func mergeResources(global, project, overrides []domain.ResourceEntry) []domain.ResourceEntry {
	merged := domain.CloneResourceEntries(global)
	if merged == nil {
		merged = []domain.ResourceEntry{}
	}

	index := make(map[string]int, len(merged))
	for i, e := range merged {
		index[e.ID] = i
	}

	for _, e := range project {
		if e.IsGlobal {
			continue
		}
		if _, exists := index[e.ID]; exists {
			continue
		}
		add := e.Clone()
		add.IsProjectSpecific = true
		index[add.ID] = len(merged)
		merged = append(merged, add)
	}

	for _, ov := range overrides {
		if i, exists := index[ov.ID]; exists {
			merged[i] = domain.MergeResourceEntry(merged[i], ov)
			continue
		}
		add := ov.Clone()
		add.IsProjectSpecific = true
		index[add.ID] = len(merged)
		merged = append(merged, add)
	}

	out := merged[:0:0]
	for _, e := range merged {
		if e.Status != domain.StatusInactive {
			out = append(out, e)
		}
	}
	if out == nil {
		out = []domain.ResourceEntry{}
	}
	return out
}

func mergeCategories(global, project, overrides []domain.Category) []domain.Category {
	merged := domain.CloneCategories(global)
	if merged == nil {
		merged = []domain.Category{}
	}

	index := make(map[string]int, len(merged))
	for i, c := range merged {
		index[c.ID] = i
	}

	for _, c := range project {
		if c.IsGlobal {
			continue
		}
		if _, exists := index[c.ID]; exists {
			continue
		}
		add := c.Clone()
		add.IsProjectSpecific = true
		index[add.ID] = len(merged)
		merged = append(merged, add)
	}

	for _, ov := range overrides {
		if i, exists := index[ov.ID]; exists {
			merged[i] = domain.MergeCategory(merged[i], ov)
			continue
		}
		add := ov.Clone()
		add.IsProjectSpecific = true
		index[add.ID] = len(merged)
		merged = append(merged, add)
	}

	out := merged[:0:0]
	for _, c := range merged {
		if c.Status != domain.StatusInactive {
			out = append(out, c)
		}
	}
	if out == nil {
		out = []domain.Category{}
	}
	return out
}

// invalidate clears the memo. Called unconditionally by every mutator as
// its final step; never deferred or batched.
func (r *Resolver) invalidate() {
	r.cached = false
	r.cache = nil
}

// UpsertResource inserts or replaces a supplier or internal resource.
// Global scope writes into the shared configuration and marks the store
// dirty; project scope writes into this project's override set only.
func (r *Resolver) UpsertResource(kind domain.CollectionKind, entry domain.ResourceEntry, scope domain.Scope) error {
	if kind != domain.CollectionSuppliers && kind != domain.CollectionInternalResources {
		return fmt.Errorf("upserting resource: %q is not a resource collection", kind)
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Status == "" {
		entry.Status = domain.StatusActive
	}

	switch scope {
	case domain.ScopeGlobal:
		entry.IsGlobal = true
		entry.IsProjectSpecific = false
		target := r.globalResources(kind)
		upsertResource(target, entry)
		r.store.Touch()
	case domain.ScopeProject:
		entry.IsGlobal = false
		entry.IsProjectSpecific = true
		target := r.overrideResources(kind)
		upsertResource(target, entry)
		r.projectRev++
	default:
		return fmt.Errorf("upserting resource: unknown scope %q", scope)
	}

	r.invalidate()
	return nil
}

// UpsertCategory inserts or replaces a category, same scoping rules as
// UpsertResource.
func (r *Resolver) UpsertCategory(cat domain.Category, scope domain.Scope) error {
	if cat.ID == "" {
		cat.ID = uuid.New().String()
	}
	if cat.Status == "" {
		cat.Status = domain.StatusActive
	}

	switch scope {
	case domain.ScopeGlobal:
		cat.IsGlobal = true
		cat.IsProjectSpecific = false
		upsertCategory(&r.store.Global().Categories, cat)
		r.store.Touch()
	case domain.ScopeProject:
		cat.IsGlobal = false
		cat.IsProjectSpecific = true
		upsertCategory(&r.project.ProjectOverrides.Categories, cat)
		r.projectRev++
	default:
		return fmt.Errorf("upserting category: unknown scope %q", scope)
	}

	r.invalidate()
	return nil
}

// SetParam writes one calculation parameter at the given scope.
func (r *Resolver) SetParam(key string, value any, scope domain.Scope) error {
	switch scope {
	case domain.ScopeGlobal:
		r.store.Global().CalculationParams[key] = value
		r.store.Touch()
	case domain.ScopeProject:
		r.project.ProjectOverrides.CalculationParams[key] = value
		r.projectRev++
	default:
		return fmt.Errorf("setting parameter %q: unknown scope %q", key, scope)
	}

	r.invalidate()
	return nil
}

// Delete removes an item from this project's view. A global item is never
// physically removed: it gets an inactive-status override (soft delete),
// leaving the shared configuration untouched. A project-specific item is
// removed from the override set directly. Unknown ids are a no-op.
func (r *Resolver) Delete(kind domain.CollectionKind, id string) {
	if r.globalHas(kind, id) {
		switch kind {
		case domain.CollectionCategories:
			upsertCategory(&r.project.ProjectOverrides.Categories,
				domain.Category{ID: id, Status: domain.StatusInactive})
		default:
			upsertResource(r.overrideResources(kind),
				domain.ResourceEntry{ID: id, Status: domain.StatusInactive})
		}
	} else {
		switch kind {
		case domain.CollectionCategories:
			removeCategory(&r.project.ProjectOverrides.Categories, id)
			removeCategory(&r.project.Categories, id)
		default:
			removeResource(r.overrideResources(kind), id)
			removeResource(r.projectResources(kind), id)
		}
	}
	r.projectRev++
	r.invalidate()
}

func (r *Resolver) globalResources(kind domain.CollectionKind) *[]domain.ResourceEntry {
	g := r.store.Global()
	if kind == domain.CollectionSuppliers {
		return &g.Suppliers
	}
	return &g.InternalResources
}

func (r *Resolver) projectResources(kind domain.CollectionKind) *[]domain.ResourceEntry {
	if kind == domain.CollectionSuppliers {
		return &r.project.Suppliers
	}
	return &r.project.InternalResources
}

func (r *Resolver) overrideResources(kind domain.CollectionKind) *[]domain.ResourceEntry {
	o := r.project.ProjectOverrides
	if kind == domain.CollectionSuppliers {
		return &o.Suppliers
	}
	return &o.InternalResources
}

func (r *Resolver) globalHas(kind domain.CollectionKind, id string) bool {
	g := r.store.Global()
	switch kind {
	case domain.CollectionSuppliers:
		return hasResource(g.Suppliers, id)
	case domain.CollectionInternalResources:
		return hasResource(g.InternalResources, id)
	case domain.CollectionCategories:
		for _, c := range g.Categories {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}

func hasResource(list []domain.ResourceEntry, id string) bool {
	for _, e := range list {
		if e.ID == id {
			return true
		}
	}
	return false
}

func upsertResource(list *[]domain.ResourceEntry, entry domain.ResourceEntry) {
	for i, e := range *list {
		if e.ID == entry.ID {
			(*list)[i] = entry
			return
		}
	}
	*list = append(*list, entry)
}

func removeResource(list *[]domain.ResourceEntry, id string) {
	for i, e := range *list {
		if e.ID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}

func upsertCategory(list *[]domain.Category, cat domain.Category) {
	for i, c := range *list {
		if c.ID == cat.ID {
			(*list)[i] = cat
			return
		}
	}
	*list = append(*list, cat)
}

func removeCategory(list *[]domain.Category, id string) {
	for i, c := range *list {
		if c.ID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}
