package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != week {
		t.Fatalf("expected %v, got %v", week, dur)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w 2d 6h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24 + 2*24 + 6) * time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowMonths(t *testing.T) {
	_, label, err := ParseWindow("2mo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "8w" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3y", "0d", "5"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestWindows(t *testing.T) {
	now := time.Date(2026, 6, 20, 12, 0, 0, 0, time.UTC)
	last, err := Last("3d", now)
	if err != nil {
		t.Fatal(err)
	}
	if !last.Contains(now.Add(-72*time.Hour)) || last.Contains(now.Add(-73*time.Hour)) || last.Contains(now.Add(time.Minute)) {
		t.Errorf("last window = %+v", last)
	}
	next, err := Next("1w", now)
	if err != nil {
		t.Fatal(err)
	}
	if !next.Contains(now.Add(6*day)) || next.Contains(now.Add(-time.Minute)) {
		t.Errorf("next window = %+v", next)
	}
}
