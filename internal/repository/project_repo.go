package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pvidovic/estima/internal/domain"
)

// ErrProjectNotFound is returned when a project id or name matches nothing.
var ErrProjectNotFound = errors.New("project not found")

// ProjectRecord is a stored project: identity plus the JSON-encoded
// editing session (configuration snapshot, overrides, phases, features).
type ProjectRecord struct {
	ID        string
	Name      string
	Document  domain.ProjectDocument
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SQLiteProjectRepo persists project documents.
type SQLiteProjectRepo struct {
	db *sql.DB
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(db *sql.DB) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

// Create inserts a new project.
func (r *SQLiteProjectRepo) Create(ctx context.Context, rec *ProjectRecord) error {
	doc, err := json.Marshal(rec.Document)
	if err != nil {
		return fmt.Errorf("encoding project document: %w", err)
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, string(doc),
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting project %q: %w", rec.Name, err)
	}
	return nil
}

// GetByName loads a project by its unique name.
func (r *SQLiteProjectRepo) GetByName(ctx context.Context, name string) (*ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, document, created_at, updated_at FROM projects WHERE name = ?`, name)
	return scanProject(row)
}

// List returns all projects ordered by creation time. Documents are
// decoded so callers can show summary figures without a second query.
func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*ProjectRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, document, created_at, updated_at FROM projects ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var records []*ProjectRecord
	for rows.Next() {
		rec, err := scanProjectRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return records, nil
}

// Save writes the project document back.
func (r *SQLiteProjectRepo) Save(ctx context.Context, rec *ProjectRecord) error {
	doc, err := json.Marshal(rec.Document)
	if err != nil {
		return fmt.Errorf("encoding project document: %w", err)
	}
	rec.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, document = ?, updated_at = ? WHERE id = ?`,
		rec.Name, string(doc), rec.UpdatedAt.Format(time.RFC3339), rec.ID)
	if err != nil {
		return fmt.Errorf("updating project %q: %w", rec.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("updating project %q: %w", rec.Name, ErrProjectNotFound)
	}
	return nil
}

// Delete removes a project by name. Deleting a nonexistent project is an
// error so the CLI can report the typo.
func (r *SQLiteProjectRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting project %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("deleting project %q: %w", name, ErrProjectNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row *sql.Row) (*ProjectRecord, error) {
	rec, err := scanFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	return rec, err
}

func scanProjectRows(rows *sql.Rows) (*ProjectRecord, error) {
	return scanFrom(rows)
}

func scanFrom(s rowScanner) (*ProjectRecord, error) {
	var rec ProjectRecord
	var doc, createdAt, updatedAt string
	if err := s.Scan(&rec.ID, &rec.Name, &doc, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(doc), &rec.Document); err != nil {
		return nil, fmt.Errorf("decoding project document: %w", err)
	}
	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &rec, nil
}
