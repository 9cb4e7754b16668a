package phases

import (
	"testing"

	"github.com/pvidovic/estima/internal/config"
	"github.com/pvidovic/estima/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*Engine, *config.Resolver) {
	t.Helper()
	g := &domain.GlobalConfig{
		Suppliers: []domain.ResourceEntry{
			{ID: "sup1", Name: "Alfa", Role: domain.RoleG2, RealRate: 500, OfficialRate: 560, IsGlobal: true, Status: domain.StatusActive},
			{ID: "sup2", Name: "Borea", Role: domain.RoleG2, RealRate: 400, OfficialRate: 450, IsGlobal: true, Status: domain.StatusActive},
			{ID: "sup3", Name: "Cirrus", Role: domain.RoleG2, OfficialRate: 480, IsGlobal: true, Status: domain.StatusActive},
		},
		CalculationParams: domain.CalculationParams{
			domain.ParamDefaultRateG1: 350.0,
			domain.ParamDefaultRateG2: 520.0,
			domain.ParamDefaultRateTA: 420.0,
			domain.ParamDefaultRatePM: 600.0,
		},
	}
	r := config.NewResolver(config.NewStoreFrom(g), nil)
	e := NewEngine(r, domain.DefaultPhaseDefinitions())
	e.Sync(nil, nil, 0)
	return e, r
}

func TestManDaysByRole_EvenSplit(t *testing.T) {
	got := ManDaysByRole(100, domain.RoleValues{G1: 25, G2: 25, TA: 25, PM: 25})
	assert.Equal(t, domain.RoleValues{G1: 25, G2: 25, TA: 25, PM: 25}, got)
}

func TestManDaysByRole_NoRounding(t *testing.T) {
	got := ManDaysByRole(10.3, domain.RoleValues{G2: 33})
	assert.InDelta(t, 3.399, got.G2, 0.0001)
	assert.Zero(t, got.G1)
}

func TestSync_DevelopmentManDaysDerivedFromFeatures(t *testing.T) {
	e, _ := newTestEngine(t)

	e.Sync(nil, []domain.Feature{
		{ID: "f1", ManDays: 5},
		{ID: "f2", ManDays: 3.27},
	}, 2)

	dev, ok := e.Phase(domain.DevelopmentPhaseID)
	require.True(t, ok)
	assert.Equal(t, 10.3, dev.ManDays, "rounded to one decimal")
}

func TestSync_PrefersStoredStateOverDefaults(t *testing.T) {
	e, _ := newTestEngine(t)

	stored := map[string]*domain.PhaseInstance{
		"uat": {ManDays: 7, Effort: domain.RoleValues{G1: 10, G2: 10, TA: 10, PM: 70}},
	}
	e.Sync(stored, nil, 0)

	uat, ok := e.Phase("uat")
	require.True(t, ok)
	assert.Equal(t, 7.0, uat.ManDays)
	assert.Equal(t, 70.0, uat.Effort.PM)

	fa, ok := e.Phase("functional-analysis")
	require.True(t, ok)
	assert.Zero(t, fa.ManDays, "defaults when nothing stored")
	assert.Equal(t, 60.0, fa.Effort.TA)
}

func TestSetManDays_RejectsCalculatedPhase(t *testing.T) {
	e, _ := newTestEngine(t)

	err := e.SetManDays(domain.DevelopmentPhaseID, 50)
	assert.Error(t, err)

	require.NoError(t, e.SetManDays("uat", 12.5))
	uat, _ := e.Phase("uat")
	assert.Equal(t, 12.5, uat.ManDays)

	assert.Error(t, e.SetManDays("nope", 1))
}

func TestResourceRate_FallbackChain(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.Equal(t, 520.0, e.ResourceRate(domain.RoleG2), "default rate when nothing selected")

	e.SelectSupplier(domain.RoleG2, "sup1")
	assert.Equal(t, 500.0, e.ResourceRate(domain.RoleG2), "real rate of the selection")

	e.SelectSupplier(domain.RoleG2, "sup3")
	assert.Equal(t, 480.0, e.ResourceRate(domain.RoleG2), "official rate when no real rate")

	e.SelectSupplier(domain.RoleG2, "ghost")
	assert.Zero(t, e.ResourceRate(domain.RoleG2), "unknown selection rates at zero")

	e.SelectSupplier(domain.RoleG2, "")
	assert.Equal(t, 520.0, e.ResourceRate(domain.RoleG2), "cleared selection falls back to default")
}

func TestCostByRole_GeneralPhase(t *testing.T) {
	e, _ := newTestEngine(t)

	require.NoError(t, e.SetManDays("uat", 10))
	require.NoError(t, e.SetEffort("uat", domain.RoleG1, 40))
	require.NoError(t, e.SetEffort("uat", domain.RoleG2, 30))
	require.NoError(t, e.SetEffort("uat", domain.RoleTA, 20))
	require.NoError(t, e.SetEffort("uat", domain.RolePM, 10))

	cost := e.CostByRole("uat")
	// default rates: G1 350, G2 520, TA 420, PM 600
	assert.Equal(t, 1400.0, cost.G1)
	assert.Equal(t, 1560.0, cost.G2)
	assert.Equal(t, 840.0, cost.TA)
	assert.Equal(t, 600.0, cost.PM)
}

func TestCostByRole_DevelopmentG2BilledPerFeatureSupplier(t *testing.T) {
	e, _ := newTestEngine(t)

	e.Sync(nil, []domain.Feature{
		{ID: "f1", ManDays: 5, Supplier: "sup1"}, // real rate 500
		{ID: "f2", ManDays: 3, Supplier: "sup2"}, // real rate 400
	}, 0)
	require.NoError(t, e.SetEffort(domain.DevelopmentPhaseID, domain.RoleG2, 50))

	// The globally selected G2 supplier must not influence development G2.
	e.SelectSupplier(domain.RoleG2, "sup3")

	cost := e.CostByRole(domain.DevelopmentPhaseID)
	assert.Equal(t, 1850.0, cost.G2, "round(5*500*0.5 + 3*400*0.5)")

	e.SelectSupplier(domain.RoleG2, "sup1")
	assert.Equal(t, 1850.0, e.CostByRole(domain.DevelopmentPhaseID).G2,
		"independent of the aggregate G2 selection")
}

func TestCostByRole_DevelopmentOtherRolesUseAggregateRate(t *testing.T) {
	e, _ := newTestEngine(t)

	e.Sync(nil, []domain.Feature{{ID: "f1", ManDays: 10, Supplier: "sup1"}}, 0)
	require.NoError(t, e.SetEffort(domain.DevelopmentPhaseID, domain.RolePM, 10))

	cost := e.CostByRole(domain.DevelopmentPhaseID)
	// dev manDays = 10, PM 10% -> 1 MD at default PM rate 600
	assert.Equal(t, 600.0, cost.PM)
}

func TestCostByRole_UnknownFeatureSupplierRatesAtZero(t *testing.T) {
	e, _ := newTestEngine(t)

	e.Sync(nil, []domain.Feature{{ID: "f1", ManDays: 5, Supplier: "ghost"}}, 0)
	require.NoError(t, e.SetEffort(domain.DevelopmentPhaseID, domain.RoleG2, 50))

	assert.Zero(t, e.CostByRole(domain.DevelopmentPhaseID).G2)
}

func TestTotals_SumsAcrossPhases(t *testing.T) {
	e, _ := newTestEngine(t)

	e.Sync(nil, []domain.Feature{{ID: "f1", ManDays: 8, Supplier: "sup1"}}, 2)
	require.NoError(t, e.SetManDays("uat", 10))

	totals := e.Totals()
	assert.Equal(t, 20.0, totals.ManDays, "10 dev + 10 uat")
	assert.Equal(t, totals.ManDays, e.TotalProjectManDays())
	assert.Equal(t, totals.CostByRole.Total(), e.TotalProjectCost())

	uat, _ := e.Phase("uat")
	assert.Equal(t, e.CostByRole("uat").Total(), uat.Cost, "instance cost refreshed")
}

func TestValidateAll_Classification(t *testing.T) {
	e, _ := newTestEngine(t)

	require.NoError(t, e.SetEffort("uat", domain.RolePM, 40))                 // total 110 -> invalid
	require.NoError(t, e.SetEffort("consolidation", domain.RoleG1, 0))        // total 65 -> warning
	require.NoError(t, e.SetManDays("post-go-live", -1))                      // error flag
	require.NoError(t, e.SetEffort("technical-analysis", domain.RoleG2, 120)) // error flag

	report := e.ValidateAll()
	assert.False(t, report.IsValid)
	assert.Len(t, report.Errors, 2)

	byID := make(map[string]PhaseValidation)
	for _, p := range report.Phases {
		byID[p.ID] = p
	}
	assert.Equal(t, domain.EffortInvalid, byID["uat"].EffortStatus)
	assert.Equal(t, domain.EffortWarning, byID["consolidation"].EffortStatus)
	assert.Equal(t, domain.EffortValid, byID["functional-analysis"].EffortStatus)
}

func TestValidateAll_NeverBlocksOnEffortTotal(t *testing.T) {
	e, _ := newTestEngine(t)

	// Totals off 100 are flagged, not errors: the report stays valid.
	require.NoError(t, e.SetEffort("uat", domain.RoleG1, 5))

	report := e.ValidateAll()
	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
}

func TestSync_CacheCoherenceWithResolverMutation(t *testing.T) {
	e, r := newTestEngine(t)

	e.Sync(nil, []domain.Feature{{ID: "f1", ManDays: 5, Supplier: "sup1"}}, 0)
	require.NoError(t, e.SetEffort(domain.DevelopmentPhaseID, domain.RoleG2, 50))
	before := e.CostByRole(domain.DevelopmentPhaseID).G2

	// Override the feature's supplier rate inside the project; the very
	// next calculation must see it.
	require.NoError(t, r.UpsertResource(domain.CollectionSuppliers,
		domain.ResourceEntry{ID: "sup1", RealRate: 1000}, domain.ScopeProject))

	after := e.CostByRole(domain.DevelopmentPhaseID).G2
	assert.Equal(t, 1250.0, before)
	assert.Equal(t, 2500.0, after)
}
