package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hydroponics/internal/measurement"
	"hydroponics/internal/repository"

	"github.com/gin-gonic/gin"
)

// queryError is a client mistake in the query string; it becomes a 400.
type queryError struct {
	param string
	msg   string
}

func (e *queryError) Error() string { return fmt.Sprintf("%s: %s", e.param, e.msg) }

func optionalFloat(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &queryError{param: name, msg: "enter a number"}
	}
	return &v, nil
}

func optionalInt(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &queryError{param: name, msg: "enter a whole number"}
	}
	return &v, nil
}

// dateBound parses a lower or upper date bound. A date-only upper bound covers
// the whole day.
func dateBound(c *gin.Context, name string, upper bool) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := parseQueryTime(raw)
	if err != nil {
		return time.Time{}, &queryError{param: name, msg: "enter a valid date (YYYY-MM-DD or RFC3339)"}
	}
	if upper && isDateOnly(raw) {
		t = t.Add(24*time.Hour - time.Nanosecond).UTC()
	}
	return t, nil
}

func sortOrder(c *gin.Context) (desc bool, err error) {
	switch strings.ToLower(strings.TrimSpace(c.Query("sort_order"))) {
	case "", "asc":
		return false, nil
	case "desc":
		return true, nil
	default:
		return false, &queryError{param: "sort_order", msg: "must be asc or desc"}
	}
}

// parseMeasurementQuery reads the measurement filters. Inverted ranges are
// passed through and simply match nothing.
func parseMeasurementQuery(c *gin.Context) (repository.MeasurementQuery, error) {
	var (
		q   repository.MeasurementQuery
		err error
	)
	if q.PHMin, err = optionalFloat(c, measurement.FieldPHMin); err != nil {
		return q, err
	}
	if q.PHMax, err = optionalFloat(c, measurement.FieldPHMax); err != nil {
		return q, err
	}
	if q.TemperatureMin, err = optionalFloat(c, measurement.FieldTemperatureMin); err != nil {
		return q, err
	}
	if q.TemperatureMax, err = optionalFloat(c, measurement.FieldTemperatureMax); err != nil {
		return q, err
	}
	if q.TDSMin, err = optionalInt(c, measurement.FieldTDSMin); err != nil {
		return q, err
	}
	if q.TDSMax, err = optionalInt(c, measurement.FieldTDSMax); err != nil {
		return q, err
	}
	if q.After, err = dateBound(c, measurement.FieldTimestampAfter, false); err != nil {
		return q, err
	}
	if q.Before, err = dateBound(c, measurement.FieldTimestampBefore, true); err != nil {
		return q, err
	}

	q.SortBy = strings.TrimSpace(c.Query("sort_by"))
	if !repository.ValidMeasurementSort(q.SortBy) {
		return q, &queryError{param: "sort_by", msg: "must be one of id, timestamp, ph, temperature, tds"}
	}
	q.Desc, err = sortOrder(c)
	return q, err
}

func parseSystemQuery(c *gin.Context) (repository.SystemQuery, error) {
	var (
		q   repository.SystemQuery
		err error
	)
	q.Name = strings.TrimSpace(c.Query("name"))
	q.Location = strings.TrimSpace(c.Query("location"))
	if q.CreatedAfter, err = dateBound(c, "created_after", false); err != nil {
		return q, err
	}
	if q.CreatedBefore, err = dateBound(c, "created_before", true); err != nil {
		return q, err
	}
	q.SortBy = strings.TrimSpace(c.Query("sort_by"))
	if !repository.ValidSystemSort(q.SortBy) {
		return q, &queryError{param: "sort_by", msg: "must be one of id, name, location, created_at"}
	}
	q.Desc, err = sortOrder(c)
	return q, err
}
