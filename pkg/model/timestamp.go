package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseTime accepts RFC3339 timestamps and bare ISO dates.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err == nil {
		return t, nil
	}
	if d, derr := time.Parse(layoutISO, v); derr == nil {
		return d, nil
	}
	return time.Time{}, err
}

const layoutISO = "2006-01-02"

// Timestamp is a time.Time that round-trips through JSON as RFC3339.
type Timestamp struct {
	time.Time
}

// At wraps t.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Ptr returns a pointer to a Timestamp wrapping t.
func Ptr(t time.Time) *Timestamp {
	ts := At(t)
	return &ts
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
