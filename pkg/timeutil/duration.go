// Package timeutil parses the short time windows used by `planner report`
// and `planner task upcoming --within`.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is used when no window is given.
	DefaultWindow = "1w"

	day  = 24 * time.Hour
	week = 7 * day
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]time.Duration{
		"h":     time.Hour,
		"hr":    time.Hour,
		"hrs":   time.Hour,
		"hour":  time.Hour,
		"hours": time.Hour,
		"d":     day,
		"day":   day,
		"days":  day,
		"w":     week,
		"wk":    week,
		"wks":   week,
		"week":  week,
		"weeks": week,
		// Months are counted as four weeks.
		"mo":     4 * week,
		"month":  4 * week,
		"months": 4 * week,
	}
)

// Window is a span of time ending (or starting) now.
type Window struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
	Label string    `json:"label"`
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Since) && !t.After(w.Until)
}

// Last is the window of the given length ending at now.
func Last(input string, now time.Time) (Window, error) {
	d, label, err := ParseWindow(input)
	if err != nil {
		return Window{}, err
	}
	return Window{Since: now.Add(-d), Until: now, Label: label}, nil
}

// Next is the window of the given length starting at now.
func Next(input string, now time.Time) (Window, error) {
	d, label, err := ParseWindow(input)
	if err != nil {
		return Window{}, err
	}
	return Window{Since: now, Until: now.Add(d), Label: label}, nil
}

// ParseWindow reads a compact duration such as "1w", "3d" or "1w2d6h" and
// returns it with its canonical label. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		remaining = DefaultWindow
	}

	var total time.Duration
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		unit, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", matches[2])
		}
		total += time.Duration(value) * unit
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d with week, day and hour tokens.
func FormatWindow(d time.Duration) string {
	if d < time.Hour {
		return "0h"
	}
	var b strings.Builder
	for _, u := range []struct {
		label string
		value time.Duration
	}{{"w", week}, {"d", day}, {"h", time.Hour}} {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	return b.String()
}
