package phases

import (
	"fmt"

	"github.com/pvidovic/estima/internal/domain"
)

// PhaseValidation classifies one phase's effort distribution for display.
type PhaseValidation struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	EffortTotal  float64             `json:"effortTotal"`
	EffortStatus domain.EffortStatus `json:"effortStatus"`
}

// ValidationReport is the outcome of validating all phases. Errors flag
// out-of-range values; effort totals that miss 100 are only classified,
// never rejected.
type ValidationReport struct {
	IsValid bool              `json:"isValid"`
	Errors  []string          `json:"errors"`
	Phases  []PhaseValidation `json:"phases"`
}

// ValidateAll flags negative man-days and any role effort outside [0,100],
// and classifies each phase's effort total: valid when exactly 100,
// invalid when over 100, warning otherwise. Nothing blocks on the report.
func (e *Engine) ValidateAll() ValidationReport {
	report := ValidationReport{IsValid: true}

	for _, inst := range e.instances {
		if inst.ManDays < 0 {
			report.Errors = append(report.Errors,
				fmt.Sprintf("phase %q: negative man-days (%.1f)", inst.ID, inst.ManDays))
		}
		for _, role := range domain.Roles {
			pct := inst.Effort.Get(role)
			if pct < 0 || pct > 100 {
				report.Errors = append(report.Errors,
					fmt.Sprintf("phase %q: %s effort %.1f%% outside [0,100]", inst.ID, role, pct))
			}
		}

		total := inst.Effort.Total()
		status := domain.EffortWarning
		switch {
		case total == 100:
			status = domain.EffortValid
		case total > 100:
			status = domain.EffortInvalid
		}
		report.Phases = append(report.Phases, PhaseValidation{
			ID:           inst.ID,
			Name:         inst.Name,
			EffortTotal:  total,
			EffortStatus: status,
		})
	}

	report.IsValid = len(report.Errors) == 0
	return report
}
