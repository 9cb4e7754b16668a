package phases

import (
	"fmt"
	"os"

	"github.com/pvidovic/estima/internal/domain"
	"gopkg.in/yaml.v3"
)

// definitionsFile is the YAML shape of an external phase-definition file.
type definitionsFile struct {
	Phases []domain.PhaseDefinition `yaml:"phases"`
}

// LoadDefinitions reads an ordered phase-definition list from a YAML file.
// The list must be non-empty, ids must be unique, and exactly one phase —
// the development phase — may be marked calculated.
func LoadDefinitions(path string) ([]domain.PhaseDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading phase definitions: %w", err)
	}

	var f definitionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing phase definitions: %w", err)
	}
	if err := validateDefinitions(f.Phases); err != nil {
		return nil, fmt.Errorf("phase definitions %s: %w", path, err)
	}
	return f.Phases, nil
}

// LoadDefinitionsOrDefault loads definitions from path when it is set,
// falling back to the built-in list otherwise.
func LoadDefinitionsOrDefault(path string) ([]domain.PhaseDefinition, error) {
	if path == "" {
		return domain.DefaultPhaseDefinitions(), nil
	}
	return LoadDefinitions(path)
}

func validateDefinitions(defs []domain.PhaseDefinition) error {
	if len(defs) == 0 {
		return fmt.Errorf("no phases defined")
	}
	seen := make(map[string]bool, len(defs))
	calculated := 0
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("phase with empty id")
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate phase id %q", d.ID)
		}
		seen[d.ID] = true
		if d.Calculated {
			calculated++
			if d.ID != domain.DevelopmentPhaseID {
				return fmt.Errorf("phase %q may not be calculated; only %q derives its man-days", d.ID, domain.DevelopmentPhaseID)
			}
		}
	}
	if calculated > 1 {
		return fmt.Errorf("more than one calculated phase")
	}
	return nil
}
