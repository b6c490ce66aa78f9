package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"hydroponics/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func TestMeasurementSQLite_Create_DefaultsTimestampToUTCNow(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMeasurementSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(insertMeasurementSQL)).
		WithArgs(1, sqlmock.AnyArg(), 6.5, 22.5, 900).
		WillReturnResult(sqlmock.NewResult(17, 1))

	before := time.Now().UTC().Add(-time.Second)
	m, err := repo.Create(context.Background(), models.Measurement{SystemID: 1, PH: 6.5, Temperature: 22.5, TDS: 900})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.ID != 17 {
		t.Fatalf("id = %d, want 17", m.ID)
	}
	if m.Timestamp.Location() != time.UTC || m.Timestamp.Before(before) {
		t.Fatalf("timestamp not defaulted to UTC now: %v", m.Timestamp)
	}
}

func TestMeasurementSQLite_ListAppliesEveryBound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMeasurementSQLite(db)

	where := `WHERE system_id = ? AND ph >= ? AND ph <= ? AND temperature >= ? AND temperature <= ? AND tds >= ? AND tds <= ? AND timestamp >= ? AND timestamp <= ?`
	args := []any{1, 6.0, 7.5, 18.0, 26.0, 500, 1200, "2024-01-15T00:00:00.000000Z", "2024-01-31T23:59:59.999999Z"}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM measurements " + where)).
		WithArgs(toDriverArgs(args)...).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(where + " ORDER BY timestamp ASC, id ASC")).
		WithArgs(toDriverArgs(args)...).
		WillReturnRows(sqlmock.NewRows([]string{"id", "system_id", "timestamp", "ph", "temperature", "tds"}).
			AddRow(16, 1, "2024-01-20T08:00:00.000000Z", 6.5, 22.5, 900))

	got, total, err := repo.List(context.Background(), 1, MeasurementQuery{
		PHMin: ptrFloat(6), PHMax: ptrFloat(7.5),
		TemperatureMin: ptrFloat(18), TemperatureMax: ptrFloat(26),
		TDSMin: ptrInt(500), TDSMax: ptrInt(1200),
		After:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Before: time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC),
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].TDS != 900 || got[0].Timestamp.Hour() != 8 {
		t.Fatalf("unexpected result: total=%d got=%+v", total, got)
	}
}

func TestMeasurementSQLite_Latest(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMeasurementSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(latestMeasurementSQL)).
		WithArgs(3, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "system_id", "timestamp", "ph", "temperature", "tds"}).
			AddRow(2, 3, "2025-02-15T19:08:31.972081Z", 6.5, 22.5, 900).
			AddRow(1, 3, "2025-02-15T18:08:31.000000Z", 6.4, 22.0, 880))

	got, err := repo.Latest(context.Background(), 3, 10)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("unexpected latest: %+v", got)
	}
}

func TestMeasurementSQLite_ListBadStoredTime(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMeasurementSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM measurements")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM measurements WHERE system_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "system_id", "timestamp", "ph", "temperature", "tds"}).
			AddRow(1, 1, "yesterday", 6.5, 22.5, 900))

	if _, _, err := repo.List(context.Background(), 1, MeasurementQuery{}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func toDriverArgs(in []any) []driver.Value {
	out := make([]driver.Value, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
