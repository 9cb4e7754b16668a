package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/pvidovic/estima/internal/config"
	"github.com/pvidovic/estima/internal/domain"
	"github.com/pvidovic/estima/internal/phases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePhaseBreakdownCSV(t *testing.T) {
	g := &domain.GlobalConfig{
		Suppliers: []domain.ResourceEntry{
			{ID: "sup1", Name: "Alfa", Role: domain.RoleG2, RealRate: 500, IsGlobal: true, Status: domain.StatusActive},
		},
		CalculationParams: domain.CalculationParams{
			domain.ParamDefaultRateG1: 350.0,
			domain.ParamDefaultRateG2: 500.0,
			domain.ParamDefaultRateTA: 420.0,
			domain.ParamDefaultRatePM: 600.0,
		},
	}
	r := config.NewResolver(config.NewStoreFrom(g), nil)
	e := phases.NewEngine(r, domain.DefaultPhaseDefinitions())
	e.Sync(nil, []domain.Feature{{ID: "f1", ManDays: 10, Supplier: "sup1"}}, 0)

	var b strings.Builder
	require.NoError(t, WritePhaseBreakdownCSV(&b, e))

	rows, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	require.NoError(t, err)

	defs := domain.DefaultPhaseDefinitions()
	require.Len(t, rows, len(defs)+2, "header + phases + totals")
	assert.Equal(t, []string{"phase", "man_days", "md_G1", "md_G2", "md_TA", "md_PM",
		"cost_G1", "cost_G2", "cost_TA", "cost_PM", "cost_total"}, rows[0])

	var devRow []string
	for _, row := range rows {
		if row[0] == "Development" {
			devRow = row
		}
	}
	require.NotNil(t, devRow)
	assert.Equal(t, "10", devRow[1])
	// G2 45% of 10 MD billed at the feature supplier's 500 rate.
	assert.Equal(t, "2250", devRow[7])

	assert.Equal(t, "TOTAL", rows[len(rows)-1][0])
}
