package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hydroponics/internal/models"
)

type MeasurementSQLite struct {
	db *sql.DB
}

func NewMeasurementSQLite(db *sql.DB) *MeasurementSQLite { return &MeasurementSQLite{db: db} }

var _ MeasurementRepo = (*MeasurementSQLite)(nil)

const (
	measurementColumns = `id, system_id, timestamp, ph, temperature, tds`

	insertMeasurementSQL = `INSERT INTO measurements (system_id, timestamp, ph, temperature, tds) VALUES (?, ?, ?, ?, ?)`
	latestMeasurementSQL = `SELECT ` + measurementColumns + ` FROM measurements WHERE system_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`
)

// Create inserts m; a zero Timestamp is set to now (UTC).
func (r *MeasurementSQLite) Create(ctx context.Context, m models.Measurement) (models.Measurement, error) {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	m.Timestamp = m.Timestamp.UTC().Truncate(time.Microsecond)

	res, err := r.db.ExecContext(ctx, insertMeasurementSQL, m.SystemID, formatTime(m.Timestamp), m.PH, m.Temperature, m.TDS)
	if err != nil {
		return models.Measurement{}, fmt.Errorf("insert measurement for system %d: %w", m.SystemID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Measurement{}, fmt.Errorf("get last insert id for measurement: %w", err)
	}
	m.ID = int(id)
	return m, nil
}

// List returns one page of the system's measurements matching q and the total match count.
// Bounds are inclusive; min > max simply matches nothing.
func (r *MeasurementSQLite) List(ctx context.Context, systemID int, q MeasurementQuery) ([]models.Measurement, int, error) {
	order, err := orderClause(measurementSortColumns, q.SortBy, q.Desc)
	if err != nil {
		return nil, 0, err
	}

	w := &whereBuilder{}
	w.add("system_id = ?", systemID)
	if q.PHMin != nil {
		w.add("ph >= ?", *q.PHMin)
	}
	if q.PHMax != nil {
		w.add("ph <= ?", *q.PHMax)
	}
	if q.TemperatureMin != nil {
		w.add("temperature >= ?", *q.TemperatureMin)
	}
	if q.TemperatureMax != nil {
		w.add("temperature <= ?", *q.TemperatureMax)
	}
	if q.TDSMin != nil {
		w.add("tds >= ?", *q.TDSMin)
	}
	if q.TDSMax != nil {
		w.add("tds <= ?", *q.TDSMax)
	}
	if !q.After.IsZero() {
		w.add("timestamp >= ?", formatTime(q.After))
	}
	if !q.Before.IsZero() {
		w.add("timestamp <= ?", formatTime(q.Before))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM measurements"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count measurements: %w", err)
	}

	limit, limitArgs := limitClause(q.Page)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+measurementColumns+" FROM measurements"+w.String()+order+limit,
		append(append([]any{}, w.args...), limitArgs...)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list measurements: %w", err)
	}
	defer rows.Close()

	out, err := collectMeasurements(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Latest returns up to limit newest readings, newest first.
func (r *MeasurementSQLite) Latest(ctx context.Context, systemID, limit int) ([]models.Measurement, error) {
	rows, err := r.db.QueryContext(ctx, latestMeasurementSQL, systemID, limit)
	if err != nil {
		return nil, fmt.Errorf("latest measurements for system %d: %w", systemID, err)
	}
	defer rows.Close()
	return collectMeasurements(rows)
}

func collectMeasurements(rows *sql.Rows) ([]models.Measurement, error) {
	out := make([]models.Measurement, 0, 64)
	for rows.Next() {
		var (
			m  models.Measurement
			ts string
		)
		if err := rows.Scan(&m.ID, &m.SystemID, &ts, &m.PH, &m.Temperature, &m.TDS); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		t, err := parseTime(ts)
		if err != nil {
			return nil, err
		}
		m.Timestamp = t
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
