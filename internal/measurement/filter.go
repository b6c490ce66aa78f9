// Package measurement holds the client-side measurement pipeline: the filter
// model and its query encoding, the chart series assembler and the
// submission validator.
package measurement

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Filter field names, in query-string order.
const (
	FieldPHMin           = "ph_min"
	FieldPHMax           = "ph_max"
	FieldTemperatureMin  = "temperature_min"
	FieldTemperatureMax  = "temperature_max"
	FieldTDSMin          = "tds_min"
	FieldTDSMax          = "tds_max"
	FieldTimestampAfter  = "timestamp_after"
	FieldTimestampBefore = "timestamp_before"
)

// DateLayout is the wire format of date filters.
const DateLayout = "2006-01-02"

var numericFields = []string{
	FieldPHMin, FieldPHMax,
	FieldTemperatureMin, FieldTemperatureMax,
	FieldTDSMin, FieldTDSMax,
}

var dateFields = []string{FieldTimestampAfter, FieldTimestampBefore}

// Filter is the set of user-entered range constraints for a measurement query.
// Numeric bounds are kept as typed; min <= max is not checked here.
type Filter struct {
	numeric map[string]string
	dates   map[string]time.Time
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{
		numeric: make(map[string]string, len(numericFields)),
		dates:   make(map[string]time.Time, len(dateFields)),
	}
}

func isNumericField(name string) bool {
	for _, f := range numericFields {
		if f == name {
			return true
		}
	}
	return false
}

func isDateField(name string) bool {
	return name == FieldTimestampAfter || name == FieldTimestampBefore
}

// SetField updates one constraint. An empty value clears it. Date fields
// accept YYYY-MM-DD or RFC 3339 and keep only the date.
func (f *Filter) SetField(name, value string) error {
	value = strings.TrimSpace(value)
	switch {
	case isNumericField(name):
		if value == "" {
			delete(f.numeric, name)
			return nil
		}
		f.numeric[name] = value
		return nil
	case isDateField(name):
		if value == "" {
			delete(f.dates, name)
			return nil
		}
		t, err := parseFilterDate(value)
		if err != nil {
			return fmt.Errorf("filter %s: %w", name, err)
		}
		f.dates[name] = t
		return nil
	default:
		return fmt.Errorf("unknown filter field %q", name)
	}
}

// SetDate sets a date field from t, dropping the time of day. A zero t clears it.
func (f *Filter) SetDate(name string, t time.Time) error {
	if !isDateField(name) {
		return fmt.Errorf("%q is not a date filter", name)
	}
	if t.IsZero() {
		delete(f.dates, name)
		return nil
	}
	f.dates[name] = truncateToDate(t)
	return nil
}

// Clear removes a constraint. Unknown names are ignored.
func (f *Filter) Clear(name string) {
	delete(f.numeric, name)
	delete(f.dates, name)
}

// Get returns the encoded value of a field and whether it is set.
func (f *Filter) Get(name string) (string, bool) {
	if v, ok := f.numeric[name]; ok {
		return v, true
	}
	if t, ok := f.dates[name]; ok {
		return t.Format(DateLayout), true
	}
	return "", false
}

// IsEmpty reports whether no constraint is set.
func (f *Filter) IsEmpty() bool {
	return len(f.numeric) == 0 && len(f.dates) == 0
}

// Clone returns an independent copy.
func (f *Filter) Clone() *Filter {
	c := NewFilter()
	for k, v := range f.numeric {
		c.numeric[k] = v
	}
	for k, v := range f.dates {
		c.dates[k] = v
	}
	return c
}

// QueryString encodes the set fields as "key=value&" pairs in a fixed order.
// The trailing separator is part of the format. An empty filter yields "".
func (f *Filter) QueryString() string {
	var b strings.Builder
	for _, name := range append(append([]string{}, numericFields...), dateFields...) {
		v, ok := f.Get(name)
		if !ok {
			continue
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
		b.WriteByte('&')
	}
	return b.String()
}

func parseFilterDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return truncateToDate(t), nil
}

// truncateToDate keeps the calendar date of t as seen in its own location.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
