// Package importer loads externally produced feature lists. A feature file
// is the JSON handed over by the scope-definition side: features with
// man-day estimates and an assigned supplier, plus optional coverage
// man-days added to the development phase.
package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pvidovic/estima/internal/config"
	"github.com/pvidovic/estima/internal/domain"
)

// FeatureImport is one feature entry in the import file.
type FeatureImport struct {
	ID       string  `json:"id"`
	ManDays  float64 `json:"manDays"`
	Supplier string  `json:"supplier"`
	Category string  `json:"category,omitempty"`
}

// FeatureFile is the top-level JSON structure of a feature list.
type FeatureFile struct {
	Features []FeatureImport `json:"features"`
	Coverage float64         `json:"coverage,omitempty"`
}

// Load reads and parses a feature file.
func Load(path string) (*FeatureFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feature file: %w", err)
	}
	var f FeatureFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing feature file: %w", err)
	}
	return &f, nil
}

// Validate checks the file against the project's resolved configuration
// and returns human-readable warnings: missing ids, negative man-days,
// suppliers or categories unknown to the resolver. Warnings never abort
// an import; the engine rates unknown suppliers at zero.
func Validate(f *FeatureFile, resolver *config.Resolver) []string {
	var warnings []string
	seen := make(map[string]bool, len(f.Features))

	for i, feat := range f.Features {
		ref := feat.ID
		if ref == "" {
			ref = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("feature %s: missing id", ref))
		} else if seen[ref] {
			warnings = append(warnings, fmt.Sprintf("feature %s: duplicate id", ref))
		}
		seen[ref] = true

		if feat.ManDays < 0 {
			warnings = append(warnings, fmt.Sprintf("feature %s: negative man-days (%.2f)", ref, feat.ManDays))
		}
		if feat.Supplier != "" && !resolver.Validate(domain.CollectionSuppliers, feat.Supplier) {
			warnings = append(warnings, fmt.Sprintf("feature %s: unknown supplier %q", ref, feat.Supplier))
		}
		if feat.Category != "" && !resolver.Validate(domain.CollectionCategories, feat.Category) {
			warnings = append(warnings, fmt.Sprintf("feature %s: unknown category %q", ref, feat.Category))
		}
	}
	if f.Coverage < 0 {
		warnings = append(warnings, fmt.Sprintf("coverage: negative man-days (%.2f)", f.Coverage))
	}
	return warnings
}

// ToDomain converts the file's features to domain features.
func (f *FeatureFile) ToDomain() []domain.Feature {
	out := make([]domain.Feature, 0, len(f.Features))
	for _, feat := range f.Features {
		out = append(out, domain.Feature{
			ID:       feat.ID,
			ManDays:  feat.ManDays,
			Supplier: feat.Supplier,
		})
	}
	return out
}
