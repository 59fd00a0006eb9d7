package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
)

// ValidationError reports a malformed, missing or out-of-range field. It
// matches common.ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func checkNonNegativeInt(field string, v *int) error {
	if v != nil && *v < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

func checkNonNegativeFloat(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return invalid(field, "must be a finite number")
	}
	if *v < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

func checkNotFuture(field string, t, now time.Time, skew time.Duration) error {
	if t.After(now.Add(skew)) {
		return invalid(field, "must not be in the future")
	}
	return nil
}

// StartOfDay truncates t to midnight UTC of its UTC calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// Int, Float and String return pointers for optional record fields.
func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }

func String(v string) *string { return &v }
