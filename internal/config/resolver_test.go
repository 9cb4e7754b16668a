package config

import (
	"testing"

	"github.com/pvidovic/estima/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	g := &domain.GlobalConfig{
		Suppliers: []domain.ResourceEntry{
			{ID: "s1", Name: "Alfa", Role: domain.RoleG2, RealRate: 480, OfficialRate: 550, IsGlobal: true, Status: domain.StatusActive},
			{ID: "s2", Name: "Borea", Role: domain.RoleG1, RealRate: 320, OfficialRate: 380, IsGlobal: true, Status: domain.StatusActive},
		},
		InternalResources: []domain.ResourceEntry{
			{ID: "i1", Name: "PMO", Role: domain.RolePM, RealRate: 580, OfficialRate: 620, IsGlobal: true, Status: domain.StatusActive},
		},
		Categories: []domain.Category{
			{ID: "c1", Name: "Backend", Status: domain.StatusActive, IsGlobal: true,
				FeatureTypes: []domain.FeatureType{{ID: "ft1", Name: "API", AverageMDs: 3}}},
		},
		CalculationParams: domain.CalculationParams{
			domain.ParamCurrencySymbol: "€",
			domain.ParamDefaultRateG2:  500.0,
		},
	}
	return NewStoreFrom(g)
}

func supplierIDs(res *domain.ResolvedConfig) []string {
	ids := make([]string, 0, len(res.Suppliers))
	for _, s := range res.Suppliers {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestResolve_IdempotentWithoutMutation(t *testing.T) {
	r := NewResolver(newTestStore(), nil)

	first := r.Resolve()
	second := r.Resolve()

	assert.Same(t, first, second, "memoized result should be reused")
	assert.Equal(t, first, second)
}

func TestResolve_GlobalAdditionPropagatesAcrossProjects(t *testing.T) {
	store := newTestStore()
	a := NewResolver(store, nil)
	b := NewResolver(store, nil)

	// Warm both caches first.
	a.Resolve()
	b.Resolve()

	err := a.UpsertResource(domain.CollectionSuppliers,
		domain.ResourceEntry{ID: "s9", Name: "Cirrus", Role: domain.RoleTA, RealRate: 400},
		domain.ScopeGlobal)
	require.NoError(t, err)

	assert.Contains(t, supplierIDs(a.Resolve()), "s9")
	assert.Contains(t, supplierIDs(b.Resolve()), "s9", "global add must be visible to every project")
}

func TestResolve_ProjectAdditionIsIsolated(t *testing.T) {
	store := newTestStore()
	a := NewResolver(store, nil)
	b := NewResolver(store, nil)

	err := a.UpsertResource(domain.CollectionSuppliers,
		domain.ResourceEntry{ID: "s9", Name: "Cirrus", Role: domain.RoleTA, RealRate: 400},
		domain.ScopeProject)
	require.NoError(t, err)

	assert.Contains(t, supplierIDs(a.Resolve()), "s9")
	assert.NotContains(t, supplierIDs(b.Resolve()), "s9", "project add must not leak")

	got, ok := a.FindResource(domain.CollectionSuppliers, "s9")
	require.True(t, ok)
	assert.True(t, got.IsProjectSpecific)
	assert.False(t, got.IsGlobal)
}

func TestResolve_OverrideLeavesGlobalUntouched(t *testing.T) {
	store := newTestStore()
	r := NewResolver(store, nil)

	err := r.UpsertResource(domain.CollectionSuppliers,
		domain.ResourceEntry{ID: "s1", RealRate: 999},
		domain.ScopeProject)
	require.NoError(t, err)

	got, ok := r.FindResource(domain.CollectionSuppliers, "s1")
	require.True(t, ok)
	assert.Equal(t, 999.0, got.RealRate)
	assert.True(t, got.IsOverridden)
	assert.Equal(t, "Alfa", got.Name, "fields not named by the override survive")

	assert.Equal(t, 480.0, store.Global().Suppliers[0].RealRate, "global copy unchanged")
	assert.False(t, store.Global().Suppliers[0].IsOverridden)
}

func TestDelete_GlobalItemIsSoftDeleted(t *testing.T) {
	store := newTestStore()
	a := NewResolver(store, nil)
	b := NewResolver(store, nil)

	a.Delete(domain.CollectionSuppliers, "s1")

	assert.NotContains(t, supplierIDs(a.Resolve()), "s1", "soft-deleted item leaves the merged view")
	assert.True(t, hasResource(store.Global().Suppliers, "s1"), "global collection still holds it")
	assert.Contains(t, supplierIDs(b.Resolve()), "s1", "other projects unaffected")

	ov := a.Project().ProjectOverrides.Suppliers
	require.Len(t, ov, 1)
	assert.Equal(t, domain.StatusInactive, ov[0].Status)
}

func TestDelete_ProjectSpecificItemIsRemoved(t *testing.T) {
	r := NewResolver(newTestStore(), nil)
	require.NoError(t, r.UpsertResource(domain.CollectionSuppliers,
		domain.ResourceEntry{ID: "s9", Name: "Cirrus", RealRate: 400}, domain.ScopeProject))

	r.Delete(domain.CollectionSuppliers, "s9")

	assert.NotContains(t, supplierIDs(r.Resolve()), "s9")
	assert.Empty(t, r.Project().ProjectOverrides.Suppliers, "removed outright, no tombstone")
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	r := NewResolver(newTestStore(), nil)

	r.Delete(domain.CollectionSuppliers, "nope")
	r.Delete(domain.CollectionCategories, "nope")

	assert.Len(t, r.Resolve().Suppliers, 2)
	assert.Len(t, r.Resolve().Categories, 1)
}

func TestResolve_CacheInvalidatedByEveryMutator(t *testing.T) {
	r := NewResolver(newTestStore(), nil)

	stale := r.Resolve()
	require.NoError(t, r.SetParam("riskMargin", 0.2, domain.ScopeProject))

	fresh := r.Resolve()
	assert.NotSame(t, stale, fresh)
	assert.Equal(t, 0.2, fresh.CalculationParams.Float("riskMargin", 0))

	stale = fresh
	r.Delete(domain.CollectionSuppliers, "s2")
	assert.NotSame(t, stale, r.Resolve())
}

func TestResolve_ParamsLayering(t *testing.T) {
	store := newTestStore()
	r := NewResolver(store, nil)

	require.NoError(t, r.SetParam(domain.ParamCurrencySymbol, "$", domain.ScopeProject))
	require.NoError(t, r.SetParam("newGlobal", 42.0, domain.ScopeGlobal))

	params := r.Resolve().CalculationParams
	assert.Equal(t, "$", params.String(domain.ParamCurrencySymbol, ""), "override wins over global")
	assert.Equal(t, 42.0, params.Float("newGlobal", 0))
	assert.Equal(t, "€", store.Global().CalculationParams.String(domain.ParamCurrencySymbol, ""))
}

func TestResolve_CategoryOverrideAndSoftDelete(t *testing.T) {
	r := NewResolver(newTestStore(), nil)

	require.NoError(t, r.UpsertCategory(domain.Category{ID: "c1", Description: "tweaked"}, domain.ScopeProject))
	got, ok := r.FindCategory("c1")
	require.True(t, ok)
	assert.Equal(t, "tweaked", got.Description)
	assert.Equal(t, "Backend", got.Name)
	assert.True(t, got.IsOverridden)

	r.Delete(domain.CollectionCategories, "c1")
	_, ok = r.FindCategory("c1")
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	r := NewResolver(newTestStore(), nil)

	assert.Equal(t, "Alfa (External)", r.DisplayName(domain.CollectionSuppliers, "s1"))
	assert.Equal(t, "PMO (Internal)", r.DisplayName(domain.CollectionInternalResources, "i1"))
	assert.Equal(t, "Backend", r.DisplayName(domain.CollectionCategories, "c1"))
	assert.Equal(t, "Unknown Supplier (zz)", r.DisplayName(domain.CollectionSuppliers, "zz"))
	assert.Equal(t, "Unknown Internal Resource (zz)", r.DisplayName(domain.CollectionInternalResources, "zz"))
}

func TestValidate(t *testing.T) {
	r := NewResolver(newTestStore(), nil)

	assert.True(t, r.Validate(domain.CollectionSuppliers, "s1"))
	assert.False(t, r.Validate(domain.CollectionSuppliers, "i1"), "kinds are separate namespaces")
	assert.True(t, r.Validate(domain.CollectionCategories, "c1"))
	assert.False(t, r.Validate(domain.CollectionCategories, "zz"))
}

func TestStats_BucketsAreExclusive(t *testing.T) {
	r := NewResolver(newTestStore(), nil)

	require.NoError(t, r.UpsertResource(domain.CollectionSuppliers,
		domain.ResourceEntry{ID: "s9", Name: "Cirrus", RealRate: 400}, domain.ScopeProject))
	require.NoError(t, r.UpsertResource(domain.CollectionSuppliers,
		domain.ResourceEntry{ID: "s1", RealRate: 999}, domain.ScopeProject))

	st := r.Stats()
	assert.Equal(t, CollectionStats{Global: 1, ProjectSpecific: 1, Overridden: 1}, st.Suppliers)
	assert.Equal(t, 3, st.Suppliers.Total())
	assert.Equal(t, CollectionStats{Global: 1}, st.InternalResources)
	assert.Equal(t, CollectionStats{Global: 1}, st.Categories)
}

func TestMigrateProjectConfig_LegacyShape(t *testing.T) {
	store := newTestStore()

	// Legacy project: flat collections only, one drifted entry, one local
	// addition, no override set.
	legacy := &domain.ProjectConfig{
		Suppliers: []domain.ResourceEntry{
			{ID: "s1", Name: "Alfa", Role: domain.RoleG2, RealRate: 480, OfficialRate: 550, IsGlobal: true, Status: domain.StatusActive},
			{ID: "s2", Name: "Borea", Role: domain.RoleG1, RealRate: 999, OfficialRate: 380, IsGlobal: true, Status: domain.StatusActive},
			{ID: "local1", Name: "Local Shop", Role: domain.RoleTA, RealRate: 300, Status: domain.StatusActive},
		},
	}

	r := NewResolver(store, legacy)

	require.NotNil(t, legacy.ProjectOverrides, "override set attached")
	assert.False(t, legacy.Suppliers[0].IsProjectSpecific, "identical to global copy")
	assert.True(t, legacy.Suppliers[1].IsProjectSpecific, "drifted rate marks it project-specific")
	assert.True(t, legacy.Suppliers[2].IsProjectSpecific, "unknown to global")

	got := supplierIDs(r.Resolve())
	assert.Contains(t, got, "local1")
	assert.Contains(t, got, "s2")
}

func TestResolve_NilSectionsTreatedAsEmpty(t *testing.T) {
	store := NewStoreFrom(&domain.GlobalConfig{})
	r := NewResolver(store, &domain.ProjectConfig{})

	res := r.Resolve()
	assert.Empty(t, res.Suppliers)
	assert.Empty(t, res.InternalResources)
	assert.Empty(t, res.Categories)
	assert.Empty(t, res.CalculationParams)
}

func TestStore_DirtyTracksGlobalWrites(t *testing.T) {
	store := newTestStore()
	r := NewResolver(store, nil)

	assert.False(t, store.Dirty())
	require.NoError(t, r.SetParam("x", 1.0, domain.ScopeProject))
	assert.False(t, store.Dirty(), "project writes never dirty the global store")

	require.NoError(t, r.SetParam("x", 1.0, domain.ScopeGlobal))
	assert.True(t, store.Dirty())
	store.ClearDirty()
	assert.False(t, store.Dirty())
}
