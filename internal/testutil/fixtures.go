package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pvidovic/estima/internal/domain"
)

var fixtureCounter atomic.Int64

// Resource options
type ResourceOption func(*domain.ResourceEntry)

func WithRole(r domain.Role) ResourceOption {
	return func(e *domain.ResourceEntry) {
		e.Role = r
	}
}

func WithRates(real, official float64) ResourceOption {
	return func(e *domain.ResourceEntry) {
		e.RealRate = real
		e.OfficialRate = official
	}
}

func WithStatus(s domain.EntryStatus) ResourceOption {
	return func(e *domain.ResourceEntry) {
		e.Status = s
	}
}

func WithGlobal(global bool) ResourceOption {
	return func(e *domain.ResourceEntry) {
		e.IsGlobal = global
	}
}

// NewSupplier builds an active global supplier with distinct default rates.
func NewSupplier(name string, opts ...ResourceOption) domain.ResourceEntry {
	n := fixtureCounter.Add(1)
	e := domain.ResourceEntry{
		ID:           uuid.New().String(),
		Name:         name,
		Role:         domain.RoleG2,
		Department:   fmt.Sprintf("Dept %d", n),
		RealRate:     400 + float64(n),
		OfficialRate: 450 + float64(n),
		IsGlobal:     true,
		Status:       domain.StatusActive,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// NewCategory builds an active global category with one feature type.
func NewCategory(name string) domain.Category {
	n := fixtureCounter.Add(1)
	return domain.Category{
		ID:       uuid.New().String(),
		Name:     name,
		Status:   domain.StatusActive,
		IsGlobal: true,
		FeatureTypes: []domain.FeatureType{
			{ID: uuid.New().String(), Name: fmt.Sprintf("Type %d", n), AverageMDs: 3},
		},
	}
}

// NewGlobalConfig builds a small but complete global configuration.
func NewGlobalConfig() *domain.GlobalConfig {
	return &domain.GlobalConfig{
		Suppliers: []domain.ResourceEntry{
			NewSupplier("Alfa", WithRole(domain.RoleG2)),
			NewSupplier("Borea", WithRole(domain.RoleG1)),
		},
		InternalResources: []domain.ResourceEntry{
			NewSupplier("PMO", WithRole(domain.RolePM)),
		},
		Categories:        []domain.Category{NewCategory("Backend")},
		CalculationParams: domain.DefaultCalculationParams(),
	}
}
