// Package export renders the computed estimation into exchange formats.
// It is a thin consumer of the engine: all numbers come out of the core,
// formatting is the only concern here.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pvidovic/estima/internal/domain"
	"github.com/pvidovic/estima/internal/phases"
)

// WritePhaseBreakdownCSV writes one row per phase with man-days and the
// per-role man-day and cost splits, followed by a totals row.
func WritePhaseBreakdownCSV(w io.Writer, engine *phases.Engine) error {
	cw := csv.NewWriter(w)

	header := []string{"phase", "man_days"}
	for _, role := range domain.Roles {
		header = append(header, fmt.Sprintf("md_%s", role))
	}
	for _, role := range domain.Roles {
		header = append(header, fmt.Sprintf("cost_%s", role))
	}
	header = append(header, "cost_total")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, inst := range engine.Instances() {
		md := phases.ManDaysByRole(inst.ManDays, inst.Effort)
		cost := engine.CostByRole(inst.ID)

		row := []string{inst.Name, formatNum(inst.ManDays)}
		for _, role := range domain.Roles {
			row = append(row, formatNum(md.Get(role)))
		}
		for _, role := range domain.Roles {
			row = append(row, formatNum(cost.Get(role)))
		}
		row = append(row, formatNum(cost.Total()))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for phase %q: %w", inst.ID, err)
		}
	}

	totals := engine.Totals()
	row := []string{"TOTAL", formatNum(totals.ManDays)}
	for _, role := range domain.Roles {
		row = append(row, formatNum(totals.ManDaysByRole.Get(role)))
	}
	for _, role := range domain.Roles {
		row = append(row, formatNum(totals.CostByRole.Get(role)))
	}
	row = append(row, formatNum(totals.CostByRole.Total()))
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("writing csv totals row: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// formatNum keeps exported numbers compact: two decimals, trailing zeros
// trimmed by %g for whole values.
func formatNum(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
