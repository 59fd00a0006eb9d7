package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/common"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleText_EOFAfterInput(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestGetSimpleText_EmptyEOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret!"), nil }
	var out bytes.Buffer
	pw, err := GetPassword("Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret!", string(pw))
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword("Password", &out)
	require.Error(t, err)
}

func TestOptionalNumbers(t *testing.T) {
	stubInputs(t, []string{"", "42", "x", "72,5", "abc"}, nil)
	var out bytes.Buffer

	v, err := optionalInt(nil, "Minutes", &out)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = optionalInt(nil, "Minutes", &out)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 42, *v)

	_, err = optionalInt(nil, "Minutes", &out)
	require.Error(t, err)

	f, err := optionalFloat(nil, "Weight", &out)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.InDelta(t, 72.5, *f, 1e-9)

	_, err = optionalFloat(nil, "Weight", &out)
	require.Error(t, err)
}

func TestOptionalDate(t *testing.T) {
	stubInputs(t, []string{"", "2026-03-04", "04/03/2026"}, nil)
	var out bytes.Buffer

	d, err := optionalDate(nil, "Date", &out)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = optionalDate(nil, "Date", &out)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), d)

	_, err = optionalDate(nil, "Date", &out)
	require.Error(t, err)
}

func TestWorkoutType(t *testing.T) {
	stubInputs(t, []string{"", "HIIT", "yoga"}, nil)
	var out bytes.Buffer

	wt, err := workoutType(nil, &out)
	require.NoError(t, err)
	assert.Equal(t, models.WorkoutType(""), wt)

	wt, err = workoutType(nil, &out)
	require.NoError(t, err)
	assert.Equal(t, models.WorkoutHIIT, wt)

	_, err = workoutType(nil, &out)
	require.ErrorIs(t, err, common.ErrValidation)
}
