package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"hydroponics/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSystemSQLite_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSystemSQLite(db)

	created := time.Date(2025, 2, 17, 11, 56, 38, 938336000, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(insertSystemSQL)).
		WithArgs(4, "Greenhouse A", "Farm #1", "2025-02-17T11:56:38.938336Z").
		WillReturnResult(sqlmock.NewResult(15, 1))

	got, err := repo.Create(context.Background(), models.System{OwnerID: 4, Name: "Greenhouse A", Location: "Farm #1", CreatedAt: created})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID != 15 || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected system: %+v", got)
	}
}

func TestSystemSQLite_Get(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSystemSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectSystemSQL)).
		WithArgs(1, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "location", "created_at"}).
			AddRow(1, 4, "Green", "Farm #1", "2025-02-15T17:10:58.803766Z"))
	mock.ExpectQuery(regexp.QuoteMeta(selectSystemSQL)).
		WithArgs(2, 4).
		WillReturnError(sql.ErrNoRows)

	s, err := repo.Get(context.Background(), 4, 1)
	if err != nil || s == nil || s.Name != "Green" || s.OwnerID != 4 {
		t.Fatalf("Get found: s=%+v err=%v", s, err)
	}
	s, err = repo.Get(context.Background(), 4, 2)
	if err != nil || s != nil {
		t.Fatalf("Get missing: want (nil, nil), got (%+v, %v)", s, err)
	}
}

func TestSystemSQLite_ListBuildsFiltersAndPaging(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSystemSQLite(db)

	after := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM systems WHERE owner_id = ? AND name LIKE ? ESCAPE '\' AND created_at >= ?`)).
		WithArgs(4, "%green%", "2025-01-01T00:00:00.000000Z").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM systems WHERE owner_id = ? AND name LIKE ? ESCAPE '\' AND created_at >= ? ORDER BY name DESC, id DESC LIMIT ? OFFSET ?`)).
		WithArgs(4, "%green%", "2025-01-01T00:00:00.000000Z", 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "location", "created_at"}).
			AddRow(3, 4, "Greenhouse C", "Farm #2", "2025-02-15T17:11:57.798625Z").
			AddRow(2, 4, "Greenhouse B", "Farm #1", "2025-02-15T17:11:00.000000Z"))

	got, total, err := repo.List(context.Background(), 4, SystemQuery{
		Name:         "green",
		CreatedAfter: after,
		SortBy:       "name",
		Desc:         true,
		Page:         Page{Limit: 2, Offset: 2},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 12 || len(got) != 2 || got[0].ID != 3 {
		t.Fatalf("unexpected result: total=%d got=%+v", total, got)
	}
}

func TestSystemSQLite_ListRejectsUnknownSort(t *testing.T) {
	db, _, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSystemSQLite(db)

	if _, _, err := repo.List(context.Background(), 1, SystemQuery{SortBy: "owner_id; DROP TABLE systems"}); err == nil {
		t.Fatalf("expected error for unknown sort field")
	}
}

func TestSystemSQLite_UpdateDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSystemSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(updateSystemSQL)).
		WithArgs("Updated", "Greenhouse B", 5, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteSystemSQL)).
		WithArgs(5, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteSystemSQL)).
		WithArgs(6, 3).
		WillReturnError(errors.New("locked"))

	ok, err := repo.Update(context.Background(), models.System{ID: 5, OwnerID: 2, Name: "Updated", Location: "Greenhouse B"})
	if err != nil || !ok {
		t.Fatalf("Update: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Delete(context.Background(), 3, 5)
	if err != nil || ok {
		t.Fatalf("Delete foreign system: ok=%v err=%v", ok, err)
	}
	if _, err = repo.Delete(context.Background(), 3, 6); err == nil || !contains(err.Error(), "delete system 6") {
		t.Fatalf("expected wrapped delete error, got %v", err)
	}
}

func TestSystemSQLite_OwnerOf(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSystemSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectOwnerSQL)).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(selectOwnerSQL)).
		WithArgs(5).
		WillReturnError(sql.ErrNoRows)

	owner, err := repo.OwnerOf(context.Background(), 4)
	if err != nil || owner != 2 {
		t.Fatalf("OwnerOf(4) = %d, %v", owner, err)
	}
	owner, err = repo.OwnerOf(context.Background(), 5)
	if err != nil || owner != 0 {
		t.Fatalf("OwnerOf(5) = %d, %v; want 0, nil", owner, err)
	}
}
