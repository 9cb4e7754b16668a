package repository

import (
	"context"
	"testing"

	"github.com/pvidovic/estima/internal/domain"
	"github.com/pvidovic/estima/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRepo_LoadGlobal_EmptyDatabase(t *testing.T) {
	repo := NewSQLiteConfigRepo(testutil.NewTestDB(t))

	g, err := repo.LoadGlobal(context.Background())
	require.NoError(t, err)
	assert.Nil(t, g, "nothing persisted yet -> caller seeds defaults")
}

func TestConfigRepo_SaveLoadRoundtrip(t *testing.T) {
	repo := NewSQLiteConfigRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	saved := domain.DefaultGlobalConfig()
	require.NoError(t, repo.SaveGlobal(ctx, saved))

	loaded, err := repo.LoadGlobal(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Len(t, loaded.Suppliers, len(saved.Suppliers))
	assert.Len(t, loaded.InternalResources, len(saved.InternalResources))
	assert.Len(t, loaded.Categories, len(saved.Categories))

	var backend *domain.Category
	for i := range loaded.Categories {
		if loaded.Categories[i].Name == "Backend" {
			backend = &loaded.Categories[i]
		}
	}
	require.NotNil(t, backend)
	assert.Len(t, backend.FeatureTypes, 3)

	assert.Equal(t, "€", loaded.CalculationParams.String(domain.ParamCurrencySymbol, ""))
	assert.Equal(t, 500.0, loaded.CalculationParams.Float(domain.ParamDefaultRateG2, 0))

	for _, s := range loaded.Suppliers {
		assert.True(t, s.IsGlobal, "persisted entries load as global")
	}
}

func TestConfigRepo_SaveReplacesPreviousState(t *testing.T) {
	repo := NewSQLiteConfigRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveGlobal(ctx, domain.DefaultGlobalConfig()))

	slim := &domain.GlobalConfig{
		Suppliers: []domain.ResourceEntry{testutil.NewSupplier("Only One")},
		CalculationParams: domain.CalculationParams{
			domain.ParamCurrencySymbol: "$",
		},
	}
	slim.Normalize()
	require.NoError(t, repo.SaveGlobal(ctx, slim))

	loaded, err := repo.LoadGlobal(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Suppliers, 1)
	assert.Empty(t, loaded.Categories)
	assert.Equal(t, "$", loaded.CalculationParams.String(domain.ParamCurrencySymbol, ""))
}
