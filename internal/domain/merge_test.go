package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeResourceEntry_PartialOverride(t *testing.T) {
	base := ResourceEntry{
		ID: "s1", Name: "Alfa", Role: RoleG2, Department: "Delivery",
		RealRate: 480, OfficialRate: 550, IsGlobal: true, Status: StatusActive,
	}

	merged := MergeResourceEntry(base, ResourceEntry{ID: "s1", RealRate: 500})

	assert.Equal(t, 500.0, merged.RealRate, "overridden field applies")
	assert.Equal(t, "Alfa", merged.Name, "untouched fields survive")
	assert.Equal(t, 550.0, merged.OfficialRate)
	assert.Equal(t, StatusActive, merged.Status)
	assert.True(t, merged.IsOverridden)
	assert.Equal(t, 480.0, base.RealRate, "base is not mutated")
}

func TestMergeResourceEntry_SoftDeleteOverride(t *testing.T) {
	base := ResourceEntry{ID: "s1", Name: "Alfa", Role: RoleG2, RealRate: 480, Status: StatusActive}

	merged := MergeResourceEntry(base, ResourceEntry{ID: "s1", Status: StatusInactive})

	assert.Equal(t, StatusInactive, merged.Status)
	assert.Equal(t, "Alfa", merged.Name)
	assert.Equal(t, 480.0, merged.RealRate)
}

func TestMergeCategory_FeatureTypesReplaceWholesale(t *testing.T) {
	base := Category{
		ID: "c1", Name: "Backend", Status: StatusActive,
		FeatureTypes: []FeatureType{{ID: "ft1", Name: "API", AverageMDs: 3}},
	}
	override := Category{
		ID:           "c1",
		FeatureTypes: []FeatureType{{ID: "ft2", Name: "Batch", AverageMDs: 5}},
	}

	merged := MergeCategory(base, override)

	assert.Equal(t, "Backend", merged.Name)
	assert.Len(t, merged.FeatureTypes, 1)
	assert.Equal(t, "ft2", merged.FeatureTypes[0].ID)
	assert.Equal(t, "ft1", base.FeatureTypes[0].ID, "base list untouched")
}

func TestMergeCalculationParams_LaterWins(t *testing.T) {
	global := CalculationParams{"a": 1.0, "b": 2.0}
	project := CalculationParams{"b": 3.0, "c": 4.0}
	overrides := CalculationParams{"c": 5.0}

	merged := MergeCalculationParams(global, project, overrides)

	assert.Equal(t, 1.0, merged["a"])
	assert.Equal(t, 3.0, merged["b"])
	assert.Equal(t, 5.0, merged["c"])
}

func TestEqualResourceEntry_IgnoresDerivedFlags(t *testing.T) {
	a := ResourceEntry{ID: "s1", Name: "Alfa", RealRate: 480}
	b := a
	b.IsOverridden = true
	b.IsProjectSpecific = true

	assert.True(t, EqualResourceEntry(a, b))

	b.RealRate = 481
	assert.False(t, EqualResourceEntry(a, b))
}

func TestCalculationParams_FloatTolerantOfIntLiterals(t *testing.T) {
	p := CalculationParams{"days": 20, "rate": 350.0, "symbol": "€"}

	assert.Equal(t, 20.0, p.Float("days", 0))
	assert.Equal(t, 350.0, p.Float("rate", 0))
	assert.Equal(t, 7.0, p.Float("missing", 7))
	assert.Equal(t, 7.0, p.Float("symbol", 7), "non-numeric falls back")
	assert.Equal(t, "€", p.String("symbol", "?"))
}

func TestGlobalConfigClone_Independent(t *testing.T) {
	g := DefaultGlobalConfig()
	c := g.Clone()

	c.Suppliers[0].Name = "changed"
	c.Categories[0].FeatureTypes[0].AverageMDs = 99
	c.CalculationParams[ParamCurrencySymbol] = "$"

	assert.NotEqual(t, "changed", g.Suppliers[0].Name)
	assert.NotEqual(t, 99.0, g.Categories[0].FeatureTypes[0].AverageMDs)
	assert.Equal(t, "€", g.CalculationParams.String(ParamCurrencySymbol, ""))
}

func TestDefaultPhaseDefinitions_SingleCalculatedPhase(t *testing.T) {
	defs := DefaultPhaseDefinitions()

	var calculated []string
	for _, d := range defs {
		if d.Calculated {
			calculated = append(calculated, d.ID)
		}
	}
	assert.Equal(t, []string{DevelopmentPhaseID}, calculated)
}
