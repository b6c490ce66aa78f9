package measurement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryString_EmptyFilter(t *testing.T) {
	assert.Equal(t, "", NewFilter().QueryString())
}

func TestQueryString_NumberAndDate(t *testing.T) {
	f := NewFilter()
	require.NoError(t, f.SetField(FieldPHMin, "6"))
	require.NoError(t, f.SetDate(FieldTimestampAfter, time.Date(2024, time.January, 15, 18, 30, 0, 0, time.UTC)))

	assert.Equal(t, "ph_min=6&timestamp_after=2024-01-15&", f.QueryString())
}

func TestQueryString_FixedOrderAndLiteralNumbers(t *testing.T) {
	f := NewFilter()
	require.NoError(t, f.SetField(FieldTimestampBefore, "2024-02-01"))
	require.NoError(t, f.SetField(FieldTDSMax, "900"))
	require.NoError(t, f.SetField(FieldPHMax, "7.25"))
	require.NoError(t, f.SetField(FieldTemperatureMin, "-5"))

	assert.Equal(t, "ph_max=7.25&temperature_min=-5&tds_max=900&timestamp_before=2024-02-01&", f.QueryString())
}

func TestSetField_EmptyClears(t *testing.T) {
	f := NewFilter()
	require.NoError(t, f.SetField(FieldPHMin, "6"))
	require.NoError(t, f.SetField(FieldTimestampAfter, "2024-01-15"))
	require.NoError(t, f.SetField(FieldPHMin, ""))
	require.NoError(t, f.SetField(FieldTimestampAfter, "  "))

	assert.True(t, f.IsEmpty())
	assert.Equal(t, "", f.QueryString())
}

func TestSetField_RFC3339DateIsTruncated(t *testing.T) {
	f := NewFilter()
	require.NoError(t, f.SetField(FieldTimestampBefore, "2025-02-17T12:22:43Z"))

	v, ok := f.Get(FieldTimestampBefore)
	require.True(t, ok)
	assert.Equal(t, "2025-02-17", v)
}

func TestSetDate_KeepsLocalCalendarDate(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
	}{
		{"east of UTC after midnight", time.Date(2024, time.January, 15, 0, 30, 0, 0, time.FixedZone("UTC+5", 5*3600))},
		{"west of UTC before midnight", time.Date(2024, time.January, 15, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFilter()
			require.NoError(t, f.SetDate(FieldTimestampAfter, tc.at))
			v, _ := f.Get(FieldTimestampAfter)
			assert.Equal(t, "2024-01-15", v)
		})
	}

	f := NewFilter()
	require.NoError(t, f.SetField(FieldTimestampBefore, "2025-02-17T01:00:00+03:00"))
	v, _ := f.Get(FieldTimestampBefore)
	assert.Equal(t, "2025-02-17", v, "offset in the input is kept, not shifted to UTC")
}

func TestSetField_Errors(t *testing.T) {
	f := NewFilter()
	assert.Error(t, f.SetField("colour", "green"))
	assert.Error(t, f.SetField(FieldTimestampAfter, "15/01/2024"))
	assert.Error(t, f.SetDate(FieldPHMin, time.Now()))
}

func TestSetField_NoRangeValidation(t *testing.T) {
	f := NewFilter()
	require.NoError(t, f.SetField(FieldPHMin, "9"))
	require.NoError(t, f.SetField(FieldPHMax, "3"))
	require.NoError(t, f.SetField(FieldTemperatureMax, "400"))

	assert.Equal(t, "ph_min=9&ph_max=3&temperature_max=400&", f.QueryString())
}

func TestClone_IsIndependent(t *testing.T) {
	f := NewFilter()
	require.NoError(t, f.SetField(FieldTDSMin, "100"))
	c := f.Clone()
	f.Clear(FieldTDSMin)

	assert.True(t, f.IsEmpty())
	assert.Equal(t, "tds_min=100&", c.QueryString())
}
