package measurement

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// Domain ranges of a reading.
const (
	MinPH          = 0.0
	MaxPH          = 14.0
	MinTemperature = -10.0
	MaxTemperature = 50.0
	MinTDS         = 0
)

// Submission is a validated new reading, ready to be posted.
type Submission struct {
	PH          float64 `json:"ph"`
	Temperature float64 `json:"temperature"`
	TDS         int     `json:"tds"`
}

// ValidationError reports one rejected submission field.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// ValidateSubmission parses raw form input and checks domain ranges.
// Every failing field is reported; use errors.As to get a *ValidationError.
func ValidateSubmission(ph, temperature, tds string) (Submission, error) {
	var (
		s   Submission
		err error
	)

	phVal, phErr := parseFloatField("ph", ph)
	tempVal, tempErr := parseFloatField("temperature", temperature)
	tdsVal, tdsErr := parseIntField("tds", tds)
	err = multierr.Combine(phErr, tempErr, tdsErr)

	if phErr == nil {
		s.PH = phVal
	}
	if tempErr == nil {
		s.Temperature = tempVal
	}
	if tdsErr == nil {
		s.TDS = tdsVal
	}

	err = multierr.Append(err, checkRanges(s, phErr == nil, tempErr == nil, tdsErr == nil))
	if err != nil {
		return Submission{}, err
	}
	return s, nil
}

// Validate applies the range rules to typed values.
func Validate(s Submission) error {
	if math.IsNaN(s.PH) || math.IsInf(s.PH, 0) {
		return &ValidationError{Field: "ph", Reason: "must be a finite number"}
	}
	if math.IsNaN(s.Temperature) || math.IsInf(s.Temperature, 0) {
		return &ValidationError{Field: "temperature", Reason: "must be a finite number"}
	}
	return checkRanges(s, true, true, true)
}

func checkRanges(s Submission, ph, temp, tds bool) error {
	var err error
	if ph && (s.PH < MinPH || s.PH > MaxPH) {
		err = multierr.Append(err, &ValidationError{
			Field:  "ph",
			Value:  strconv.FormatFloat(s.PH, 'f', -1, 64),
			Reason: fmt.Sprintf("must be between %g and %g", MinPH, MaxPH),
		})
	}
	if temp && (s.Temperature < MinTemperature || s.Temperature > MaxTemperature) {
		err = multierr.Append(err, &ValidationError{
			Field:  "temperature",
			Value:  strconv.FormatFloat(s.Temperature, 'f', -1, 64),
			Reason: fmt.Sprintf("must be between %g and %g °C", MinTemperature, MaxTemperature),
		})
	}
	if tds && s.TDS < MinTDS {
		err = multierr.Append(err, &ValidationError{
			Field:  "tds",
			Value:  strconv.Itoa(s.TDS),
			Reason: "must be >= 0",
		})
	}
	return err
}

func parseFloatField(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "not a number"}
	}
	return v, nil
}

func parseIntField(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "not an integer"}
	}
	return v, nil
}
