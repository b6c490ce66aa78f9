package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hydroponics/internal/models"
)

type SystemSQLite struct {
	db *sql.DB
}

func NewSystemSQLite(db *sql.DB) *SystemSQLite { return &SystemSQLite{db: db} }

var _ SystemRepo = (*SystemSQLite)(nil)

const (
	systemColumns = `id, owner_id, name, location, created_at`

	insertSystemSQL = `INSERT INTO systems (owner_id, name, location, created_at) VALUES (?, ?, ?, ?)`
	selectSystemSQL = `SELECT ` + systemColumns + ` FROM systems WHERE id = ? AND owner_id = ?`
	updateSystemSQL = `UPDATE systems SET name = ?, location = ? WHERE id = ? AND owner_id = ?`
	deleteSystemSQL = `DELETE FROM systems WHERE id = ? AND owner_id = ?`
	selectAllSQL    = `SELECT ` + systemColumns + ` FROM systems ORDER BY id ASC`
	selectOwnerSQL  = `SELECT owner_id FROM systems WHERE id = ?`
)

// Create inserts s and returns it with ID and CreatedAt set.
func (r *SystemSQLite) Create(ctx context.Context, s models.System) (models.System, error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	s.CreatedAt = s.CreatedAt.UTC().Truncate(time.Microsecond)

	res, err := r.db.ExecContext(ctx, insertSystemSQL, s.OwnerID, s.Name, s.Location, formatTime(s.CreatedAt))
	if err != nil {
		return models.System{}, fmt.Errorf("insert system %q: %w", s.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.System{}, fmt.Errorf("get last insert id for system %q: %w", s.Name, err)
	}
	s.ID = int(id)
	return s, nil
}

// Get returns the owner's system, or (nil, nil) if there is none.
func (r *SystemSQLite) Get(ctx context.Context, ownerID, id int) (*models.System, error) {
	s, err := scanSystem(r.db.QueryRowContext(ctx, selectSystemSQL, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select system %d: %w", id, err)
	}
	return &s, nil
}

// List returns one page of the owner's systems and the total match count.
func (r *SystemSQLite) List(ctx context.Context, ownerID int, q SystemQuery) ([]models.System, int, error) {
	order, err := orderClause(systemSortColumns, q.SortBy, q.Desc)
	if err != nil {
		return nil, 0, err
	}

	w := &whereBuilder{}
	w.add("owner_id = ?", ownerID)
	if q.Name != "" {
		w.add(`name LIKE ? ESCAPE '\'`, likePattern(q.Name))
	}
	if q.Location != "" {
		w.add(`location LIKE ? ESCAPE '\'`, likePattern(q.Location))
	}
	if !q.CreatedAfter.IsZero() {
		w.add("created_at >= ?", formatTime(q.CreatedAfter))
	}
	if !q.CreatedBefore.IsZero() {
		w.add("created_at <= ?", formatTime(q.CreatedBefore))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM systems"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count systems: %w", err)
	}

	limit, limitArgs := limitClause(q.Page)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+systemColumns+" FROM systems"+w.String()+order+limit,
		append(append([]any{}, w.args...), limitArgs...)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list systems: %w", err)
	}
	defer rows.Close()

	out, err := collectSystems(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListAll returns every system of every owner; the simulator uses it.
func (r *SystemSQLite) ListAll(ctx context.Context) ([]models.System, error) {
	rows, err := r.db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("list all systems: %w", err)
	}
	defer rows.Close()
	return collectSystems(rows)
}

// Update writes name and location. It reports false when no owned row matched.
func (r *SystemSQLite) Update(ctx context.Context, s models.System) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateSystemSQL, s.Name, s.Location, s.ID, s.OwnerID)
	if err != nil {
		return false, fmt.Errorf("update system %d: %w", s.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for system %d: %w", s.ID, err)
	}
	return n > 0, nil
}

// Delete removes the system; its measurements go with it (ON DELETE CASCADE).
func (r *SystemSQLite) Delete(ctx context.Context, ownerID, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteSystemSQL, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete system %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for system %d: %w", id, err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSystem(row rowScanner) (models.System, error) {
	var (
		s       models.System
		created string
	)
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Location, &created); err != nil {
		return models.System{}, err
	}
	t, err := parseTime(created)
	if err != nil {
		return models.System{}, err
	}
	s.CreatedAt = t
	return s, nil
}

func collectSystems(rows *sql.Rows) ([]models.System, error) {
	out := make([]models.System, 0, 16)
	for rows.Next() {
		s, err := scanSystem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan system: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// OwnerOf returns the owner of system id, or 0 if the system does not exist.
func (r *SystemSQLite) OwnerOf(ctx context.Context, id int) (int, error) {
	var owner int
	err := r.db.QueryRowContext(ctx, selectOwnerSQL, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("select owner of system %d: %w", id, err)
	}
	return owner, nil
}
