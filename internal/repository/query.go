package repository

import (
	"fmt"
	"strings"
	"time"
)

// timeLayout is the fixed-width UTC text form of every stored timestamp.
const timeLayout = "2006-01-02T15:04:05.000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// rows written by other tools may carry RFC 3339
		if t2, err2 := time.Parse(time.RFC3339Nano, s); err2 == nil {
			return t2.UTC(), nil
		}
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}

// Page limits a list query; Limit <= 0 means no limit.
type Page struct {
	Limit  int
	Offset int
}

// SystemQuery filters an owner's systems.
type SystemQuery struct {
	Name          string    // case-insensitive substring
	Location      string    // case-insensitive substring
	CreatedAfter  time.Time // inclusive; zero means no bound
	CreatedBefore time.Time // inclusive; zero means no bound
	SortBy        string    // id | name | location | created_at
	Desc          bool
	Page
}

// MeasurementQuery filters a system's measurements. Nil bounds are unset.
type MeasurementQuery struct {
	PHMin, PHMax                   *float64
	TemperatureMin, TemperatureMax *float64
	TDSMin, TDSMax                 *int
	After, Before                  time.Time // inclusive; zero means no bound
	SortBy                         string    // id | timestamp | ph | temperature | tds
	Desc                           bool
	Page
}

var systemSortColumns = map[string]string{
	"":           "created_at",
	"id":         "id",
	"name":       "name",
	"location":   "location",
	"created_at": "created_at",
}

var measurementSortColumns = map[string]string{
	"":            "timestamp",
	"id":          "id",
	"timestamp":   "timestamp",
	"ph":          "ph",
	"temperature": "temperature",
	"tds":         "tds",
}

// ValidSystemSort reports whether field is an accepted systems sort_by.
func ValidSystemSort(field string) bool {
	_, ok := systemSortColumns[field]
	return ok
}

// ValidMeasurementSort reports whether field is an accepted measurements sort_by.
func ValidMeasurementSort(field string) bool {
	_, ok := measurementSortColumns[field]
	return ok
}

// whereBuilder accumulates AND-ed conditions and their args.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func orderClause(columns map[string]string, sortBy string, desc bool) (string, error) {
	col, ok := columns[sortBy]
	if !ok {
		return "", fmt.Errorf("unsupported sort field %q", sortBy)
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	// id breaks ties so pages are stable
	if col == "id" {
		return fmt.Sprintf(" ORDER BY id %s", dir), nil
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir), nil
}

func limitClause(p Page) (string, []any) {
	if p.Limit <= 0 {
		return "", nil
	}
	return " LIMIT ? OFFSET ?", []any{p.Limit, p.Offset}
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
