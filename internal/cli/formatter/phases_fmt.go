package formatter

import (
	"fmt"
	"strings"

	"github.com/pvidovic/estima/internal/phases"
)

// FormatPhases renders the phase table: man-days, per-role effort, the
// colored effort-total indicator, and each phase's cost.
func FormatPhases(engine *phases.Engine, currency string) string {
	report := engine.ValidateAll()
	statusByID := make(map[string]phases.PhaseValidation, len(report.Phases))
	for _, p := range report.Phases {
		statusByID[p.ID] = p
	}

	headers := []string{"Phase", "MDs", "G1%", "G2%", "TA%", "PM%", "Effort", "Cost"}
	var rows [][]string
	for _, inst := range engine.Instances() {
		v := statusByID[inst.ID]
		name := inst.Name
		if inst.Calculated {
			name += Dim(" *")
		}
		cost := engine.CostByRole(inst.ID).Total()
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%.1f", inst.ManDays),
			fmt.Sprintf("%.0f", inst.Effort.G1),
			fmt.Sprintf("%.0f", inst.Effort.G2),
			fmt.Sprintf("%.0f", inst.Effort.TA),
			fmt.Sprintf("%.0f", inst.Effort.PM),
			EffortIndicator(v.EffortTotal, v.EffortStatus),
			Money(cost, currency),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	b.WriteString(Dim("* man-days derived from the feature list") + "\n")
	return b.String()
}

// FormatTotals renders the cross-phase summary.
func FormatTotals(totals phases.ProjectTotals, currency string) string {
	var b strings.Builder
	b.WriteString(Header("Project Totals") + "\n")
	b.WriteString(fmt.Sprintf("%s %.1f\n", Bold("Man-days:"), totals.ManDays))

	headers := []string{"", "G1", "G2", "TA", "PM", "Total"}
	rows := [][]string{
		{
			"Man-days",
			fmt.Sprintf("%.1f", totals.ManDaysByRole.G1),
			fmt.Sprintf("%.1f", totals.ManDaysByRole.G2),
			fmt.Sprintf("%.1f", totals.ManDaysByRole.TA),
			fmt.Sprintf("%.1f", totals.ManDaysByRole.PM),
			fmt.Sprintf("%.1f", totals.ManDaysByRole.Total()),
		},
		{
			"Cost",
			Money(totals.CostByRole.G1, currency),
			Money(totals.CostByRole.G2, currency),
			Money(totals.CostByRole.TA, currency),
			Money(totals.CostByRole.PM, currency),
			Bold(Money(totals.CostByRole.Total(), currency)),
		},
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatValidation renders the validation report: hard errors first, then
// the per-phase effort classification.
func FormatValidation(report phases.ValidationReport) string {
	var b strings.Builder
	if report.IsValid {
		b.WriteString(StyleGreen.Render("All phases valid") + "\n")
	} else {
		b.WriteString(StyleRed.Render(fmt.Sprintf("%d error(s)", len(report.Errors))) + "\n")
		for _, e := range report.Errors {
			b.WriteString("  " + StyleRed.Render("✗") + " " + e + "\n")
		}
	}
	for _, p := range report.Phases {
		b.WriteString(fmt.Sprintf("  %s %s\n", EffortIndicator(p.EffortTotal, p.EffortStatus), p.Name))
	}
	return b.String()
}

// Money renders a rounded amount with the configured currency symbol.
func Money(v float64, currency string) string {
	return fmt.Sprintf("%.0f %s", v, currency)
}
