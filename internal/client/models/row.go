package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format of date-only columns.
const DateLayout = "2006-01-02"

// Row is one decoded record as delivered by the remote store: JSON-like
// values where numbers are float64 and timestamps are strings.
type Row map[string]any

func (r Row) requiredString(key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", invalid(key, "missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(key, fmt.Sprintf("expected string, got %T", v))
	}
	return s, nil
}

func (r Row) optionalString(key string) (*string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, invalid(key, fmt.Sprintf("expected string, got %T", v))
	}
	return &s, nil
}

func (r Row) uuid(key string) (string, error) {
	s, err := r.requiredString(key)
	if err != nil {
		return "", err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", invalid(key, "not a uuid")
	}
	return id.String(), nil
}

func (r Row) timestamp(key string) (time.Time, error) {
	s, err := r.requiredString(key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, invalid(key, "not an RFC3339 timestamp")
	}
	return t.UTC(), nil
}

// date accepts both date-only values and full timestamps, reducing the
// latter to their UTC day.
func (r Row) date(key string) (time.Time, error) {
	s, err := r.requiredString(key)
	if err != nil {
		return time.Time{}, err
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, invalid(key, "not a date")
	}
	return StartOfDay(t), nil
}

func (r Row) optionalFloat(key string) (*float64, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil, invalid(key, fmt.Sprintf("expected number, got %T", v))
	}
	if err := checkNonNegativeFloat(key, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r Row) optionalInt(key string) (*int, error) {
	f, err := r.optionalFloat(key)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != math.Trunc(*f) {
		return nil, invalid(key, "expected an integer")
	}
	// float64(math.MaxInt) rounds up to 2^63, which no int can hold.
	if *f >= math.MaxInt || *f < math.MinInt {
		return nil, invalid(key, "integer out of range")
	}
	i := int(*f)
	return &i, nil
}

func putOptional[T any](row Row, key string, v *T) {
	if v != nil {
		row[key] = *v
	}
}

func putOptionalString(row Row, key string, v *string) {
	if v != nil {
		row[key] = strings.TrimSpace(*v)
	}
}
