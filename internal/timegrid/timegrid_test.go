package timegrid

import (
	"reflect"
	"testing"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"09:60", 0, false},
		{"9h30", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, err := ToMinutes(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ToMinutes(%q): unexpected error %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ToMinutes(%q): expected error", tc.in)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFromMinutes_WrapsPastMidnight(t *testing.T) {
	if got := FromMinutes(570); got != "09:30" {
		t.Fatalf("FromMinutes(570) = %q, want 09:30", got)
	}
	// 23:45 + 30min enrola para 00:15 do mesmo "dia"
	if got := FromMinutes(24*60 + 15); got != "00:15" {
		t.Fatalf("FromMinutes(1455) = %q, want 00:15", got)
	}
}

func TestAddMinutes(t *testing.T) {
	got, err := AddMinutes("09:00", 75)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "10:15" {
		t.Fatalf("AddMinutes(09:00, 75) = %q, want 10:15", got)
	}

	if _, err := AddMinutes("xx:00", 30); err == nil {
		t.Fatal("expected error for invalid base time")
	}
}

func TestSlots_ExclusiveEnd(t *testing.T) {
	got, err := Slots("09:00", "13:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Slots(09:00, 13:00) = %v, want %v", got, want)
	}
}

func TestSlots_EmptyWindow(t *testing.T) {
	got, err := Slots("13:00", "13:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no slots, got %v", got)
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	// [540,570) x [570,600): encostados não sobrepõem
	if Overlaps(540, 570, 570, 600) {
		t.Fatal("touching intervals must not overlap")
	}
	if !Overlaps(540, 600, 570, 630) {
		t.Fatal("expected overlap")
	}
	if !Overlaps(540, 570, 500, 700) {
		t.Fatal("expected overlap when contained")
	}
}
