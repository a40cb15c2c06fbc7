package postgres

import (
	"database/sql"
	"testing"
	"time"
)

func TestUnixTimeRoundTrip(t *testing.T) {
	t.Run("round trips a timestamp", func(t *testing.T) {
		at := time.Date(2026, 6, 13, 13, 0, 0, 0, time.UTC)
		got := unixToTime(timeToUnix(at))
		if !got.Equal(at) {
			t.Fatalf("expected %v, got %v", at, got)
		}
	})

	t.Run("zero time maps to zero", func(t *testing.T) {
		if timeToUnix(time.Time{}) != 0 {
			t.Fatalf("expected 0 for zero time")
		}
		if !unixToTime(0).IsZero() {
			t.Fatalf("expected zero time for 0")
		}
	})
}

func TestNullFloatRoundTrip(t *testing.T) {
	t.Run("nil maps to invalid", func(t *testing.T) {
		if nullFloat(nil).Valid {
			t.Fatalf("expected invalid for nil")
		}
		if nullFloatPtr(sql.NullFloat64{}) != nil {
			t.Fatalf("expected nil for invalid")
		}
	})

	t.Run("value round trips", func(t *testing.T) {
		value := 27.5
		got := nullFloatPtr(nullFloat(&value))
		if got == nil || *got != value {
			t.Fatalf("expected %v, got %v", value, got)
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if isNotFound(fakeErr("pq: relation matches does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
