package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pvidovic/estima/internal/config"
	"github.com/pvidovic/estima/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeatureFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "features.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testResolver() *config.Resolver {
	g := &domain.GlobalConfig{
		Suppliers: []domain.ResourceEntry{
			{ID: "sup1", Name: "Alfa", Role: domain.RoleG2, RealRate: 500, IsGlobal: true, Status: domain.StatusActive},
		},
		Categories: []domain.Category{
			{ID: "cat1", Name: "Backend", Status: domain.StatusActive, IsGlobal: true},
		},
	}
	return config.NewResolver(config.NewStoreFrom(g), nil)
}

func TestLoad_Valid(t *testing.T) {
	path := writeFeatureFile(t, `{
		"features": [
			{"id": "f1", "manDays": 5, "supplier": "sup1"},
			{"id": "f2", "manDays": 3.27, "supplier": "sup1", "category": "cat1"}
		],
		"coverage": 2
	}`)

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Features, 2)
	assert.Equal(t, 2.0, f.Coverage)
	assert.Equal(t, 3.27, f.Features[1].ManDays)

	features := f.ToDomain()
	require.Len(t, features, 2)
	assert.Equal(t, domain.Feature{ID: "f1", ManDays: 5, Supplier: "sup1"}, features[0])
}

func TestLoad_Malformed(t *testing.T) {
	path := writeFeatureFile(t, `{"features": [`)

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidate_Warnings(t *testing.T) {
	f := &FeatureFile{
		Features: []FeatureImport{
			{ID: "f1", ManDays: 5, Supplier: "sup1"},
			{ID: "f1", ManDays: 3, Supplier: "ghost"},
			{ManDays: -1, Category: "nope"},
		},
		Coverage: -2,
	}

	warnings := Validate(f, testResolver())
	assert.Len(t, warnings, 6)
	assert.Contains(t, warnings[0], "duplicate id")
}

func TestValidate_CleanFile(t *testing.T) {
	f := &FeatureFile{
		Features: []FeatureImport{
			{ID: "f1", ManDays: 5, Supplier: "sup1", Category: "cat1"},
		},
		Coverage: 2,
	}

	assert.Empty(t, Validate(f, testResolver()))
}
