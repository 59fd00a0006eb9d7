package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/common"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// getSimpleText and getPassword are the seams command handlers read through.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// GetSimpleText prints a prompt to w and reads a single trimmed line from
// reader. A partial line before EOF is returned as input.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prompts on w and reads a password from the terminal without
// echo. Callers wipe the returned slice when done.
func GetPassword(prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// readSecret reads a password through the seam and returns it as a string,
// wiping the terminal buffer.
func readSecret(prompt string, w io.Writer) (string, error) {
	pw, err := getPassword(prompt, w)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// optionalText returns nil for an empty answer.
func optionalText(reader *bufio.Reader, prompt string, w io.Writer) (*string, error) {
	s, err := getSimpleText(reader, prompt+" (optional)", w)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

func optionalInt(reader *bufio.Reader, prompt string, w io.Writer) (*int, error) {
	s, err := getSimpleText(reader, prompt+" (optional)", w)
	if err != nil || s == "" {
		return nil, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a whole number", prompt, s)
	}
	return &v, nil
}

func optionalFloat(reader *bufio.Reader, prompt string, w io.Writer) (*float64, error) {
	s, err := getSimpleText(reader, prompt+" (optional)", w)
	if err != nil || s == "" {
		return nil, err
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a number", prompt, s)
	}
	return &v, nil
}

// optionalDate parses YYYY-MM-DD; an empty answer yields the zero time.
func optionalDate(reader *bufio.Reader, prompt string, w io.Writer) (time.Time, error) {
	s, err := getSimpleText(reader, prompt+" (YYYY-MM-DD, empty for today)", w)
	if err != nil || s == "" {
		return time.Time{}, err
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %q is not a date", prompt, s)
	}
	return d, nil
}

func workoutType(reader *bufio.Reader, w io.Writer) (models.WorkoutType, error) {
	names := make([]string, len(models.WorkoutTypes))
	for i, t := range models.WorkoutTypes {
		names[i] = string(t)
	}
	s, err := getSimpleText(reader, "Type ("+strings.Join(names, ", ")+"; empty for strength)", w)
	if err != nil || s == "" {
		return "", err
	}
	return models.ParseWorkoutType(s)
}
