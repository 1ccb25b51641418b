package app

import (
	"testing"
	"time"
)

func TestParseWindowExplicitBounds(t *testing.T) {
	w, err := parseWindow("2025-07-01", "2025-07-07", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Days() != 7 {
		t.Errorf("expected 7 days, got %d", w.Days())
	}
	if w.Start.Hour() != 0 {
		t.Errorf("expected start at midnight, got %v", w.Start)
	}
	if w.End.Hour() != 23 || w.End.Minute() != 59 {
		t.Errorf("expected end at the last moment of the day, got %v", w.End)
	}
}

func TestParseWindowDefaults(t *testing.T) {
	w, err := parseWindow("", "", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Days() != 30 {
		t.Errorf("expected 30-day default window, got %d days", w.Days())
	}
	if !w.End.After(time.Now().Add(-24 * time.Hour)) {
		t.Errorf("expected window to end today, got %v", w.End)
	}
}

func TestParseWindowRejectsBadInput(t *testing.T) {
	if _, err := parseWindow("July 1st", "", 30); err == nil {
		t.Error("expected error for malformed from date")
	}
	if _, err := parseWindow("2025-07-10", "2025-07-01", 30); err == nil {
		t.Error("expected error for inverted window")
	}
}
