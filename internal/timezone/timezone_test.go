package timezone

import (
	"testing"
	"time"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	if got := Location("Mars/Olympus"); got.String() != DefaultTimezone {
		t.Fatalf("expected fallback to %s, got %s", DefaultTimezone, got)
	}
	if got := Location("UTC"); got != time.UTC {
		t.Fatalf("expected UTC, got %s", got)
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("UTC", "2030-05-20", "09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2030, 5, 20, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}

	if _, err := ParseDateTime("UTC", "2030-05-20", "9h30"); err == nil {
		t.Fatal("expected error for invalid time")
	}
}

func TestWeekday(t *testing.T) {
	// 2030-05-20 é segunda-feira
	got, err := Weekday("2030-05-20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Fatalf("Weekday = %d, want 1", got)
	}

	if _, err := Weekday("20/05/2030"); err == nil {
		t.Fatal("expected error for invalid date")
	}
}
