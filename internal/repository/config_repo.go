package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pvidovic/estima/internal/domain"
)

// SQLiteConfigRepo persists the global configuration. Projects never
// write here; their deltas live inside the project document.
type SQLiteConfigRepo struct {
	db *sql.DB
}

// NewSQLiteConfigRepo creates a new SQLiteConfigRepo.
func NewSQLiteConfigRepo(db *sql.DB) *SQLiteConfigRepo {
	return &SQLiteConfigRepo{db: db}
}

// LoadGlobal reads the persisted global configuration. When nothing has
// been persisted yet it returns (nil, nil); the caller falls back to the
// built-in defaults.
func (r *SQLiteConfigRepo) LoadGlobal(ctx context.Context) (*domain.GlobalConfig, error) {
	suppliers, err := r.loadResources(ctx, domain.KindSupplier)
	if err != nil {
		return nil, err
	}
	internal, err := r.loadResources(ctx, domain.KindInternal)
	if err != nil {
		return nil, err
	}
	categories, err := r.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	params, err := r.loadParams(ctx)
	if err != nil {
		return nil, err
	}

	if len(suppliers) == 0 && len(internal) == 0 && len(categories) == 0 && len(params) == 0 {
		return nil, nil
	}

	g := &domain.GlobalConfig{
		Suppliers:         suppliers,
		InternalResources: internal,
		Categories:        categories,
		CalculationParams: params,
	}
	g.Normalize()
	return g, nil
}

// SaveGlobal replaces the persisted global configuration in one
// transaction.
func (r *SQLiteConfigRepo) SaveGlobal(ctx context.Context, g *domain.GlobalConfig) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting config save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"feature_types", "categories", "resources", "calc_params"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertResources(ctx, tx, domain.KindSupplier, g.Suppliers); err != nil {
		return err
	}
	if err := insertResources(ctx, tx, domain.KindInternal, g.InternalResources); err != nil {
		return err
	}
	if err := insertCategories(ctx, tx, g.Categories); err != nil {
		return err
	}
	if err := insertParams(ctx, tx, g.CalculationParams); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing config save: %w", err)
	}
	return nil
}

func (r *SQLiteConfigRepo) loadResources(ctx context.Context, kind domain.ResourceKind) ([]domain.ResourceEntry, error) {
	query := `SELECT id, name, role, department, real_rate, official_rate, status
		FROM resources WHERE kind = ? ORDER BY name, role`
	rows, err := r.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("listing %s resources: %w", kind, err)
	}
	defer rows.Close()

	var entries []domain.ResourceEntry
	for rows.Next() {
		var e domain.ResourceEntry
		var role, status string
		if err := rows.Scan(&e.ID, &e.Name, &role, &e.Department, &e.RealRate, &e.OfficialRate, &status); err != nil {
			return nil, fmt.Errorf("scanning resource: %w", err)
		}
		e.Role = domain.Role(role)
		e.Status = domain.EntryStatus(status)
		e.IsGlobal = true
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	return entries, nil
}

func (r *SQLiteConfigRepo) loadCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, status FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	byID := make(map[string]int)
	for rows.Next() {
		var c domain.Category
		var status string
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &status); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Status = domain.EntryStatus(status)
		c.IsGlobal = true
		byID[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	ftRows, err := r.db.QueryContext(ctx,
		`SELECT id, category_id, name, average_mds FROM feature_types ORDER BY category_id, name`)
	if err != nil {
		return nil, fmt.Errorf("listing feature types: %w", err)
	}
	defer ftRows.Close()

	for ftRows.Next() {
		var ft domain.FeatureType
		var categoryID string
		if err := ftRows.Scan(&ft.ID, &categoryID, &ft.Name, &ft.AverageMDs); err != nil {
			return nil, fmt.Errorf("scanning feature type: %w", err)
		}
		if i, ok := byID[categoryID]; ok {
			categories[i].FeatureTypes = append(categories[i].FeatureTypes, ft)
		}
	}
	if err := ftRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feature types: %w", err)
	}
	return categories, nil
}

func (r *SQLiteConfigRepo) loadParams(ctx context.Context) (domain.CalculationParams, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM calc_params`)
	if err != nil {
		return nil, fmt.Errorf("listing calculation params: %w", err)
	}
	defer rows.Close()

	params := domain.CalculationParams{}
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("scanning calculation param: %w", err)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("decoding calculation param %q: %w", key, err)
		}
		params[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calculation params: %w", err)
	}
	return params, nil
}

func insertResources(ctx context.Context, tx *sql.Tx, kind domain.ResourceKind, entries []domain.ResourceEntry) error {
	query := `INSERT INTO resources (id, kind, name, role, department, real_rate, official_rate, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, query,
			e.ID, string(kind), e.Name, string(e.Role), e.Department,
			e.RealRate, e.OfficialRate, string(e.Status))
		if err != nil {
			return fmt.Errorf("inserting %s resource %q: %w", kind, e.ID, err)
		}
	}
	return nil
}

func insertCategories(ctx context.Context, tx *sql.Tx, categories []domain.Category) error {
	for _, c := range categories {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, description, status) VALUES (?, ?, ?, ?)`,
			c.ID, c.Name, c.Description, string(c.Status))
		if err != nil {
			return fmt.Errorf("inserting category %q: %w", c.ID, err)
		}
		for _, ft := range c.FeatureTypes {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO feature_types (id, category_id, name, average_mds) VALUES (?, ?, ?, ?)`,
				ft.ID, c.ID, ft.Name, ft.AverageMDs)
			if err != nil {
				return fmt.Errorf("inserting feature type %q: %w", ft.ID, err)
			}
		}
	}
	return nil
}

func insertParams(ctx context.Context, tx *sql.Tx, params domain.CalculationParams) error {
	for key, value := range params {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encoding calculation param %q: %w", key, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO calc_params (key, value) VALUES (?, ?)`, key, string(raw))
		if err != nil {
			return fmt.Errorf("inserting calculation param %q: %w", key, err)
		}
	}
	return nil
}
