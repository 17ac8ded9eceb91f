package booking

import "testing"

func TestSlotOverlaps(t *testing.T) {
	base := Slot{Date: "2025-06-01", StartTime: "09:00", Duration: 2}

	cases := []struct {
		name  string
		other Slot
		want  bool
	}{
		{
			name:  "contained span overlaps",
			other: Slot{Date: "2025-06-01", StartTime: "10:00", Duration: 1},
			want:  true,
		},
		{
			name:  "identical span overlaps",
			other: Slot{Date: "2025-06-01", StartTime: "09:00", Duration: 2},
			want:  true,
		},
		{
			name:  "partial tail overlap",
			other: Slot{Date: "2025-06-01", StartTime: "10:30", Duration: 2},
			want:  true,
		},
		{
			name:  "touching end-to-end does not conflict",
			other: Slot{Date: "2025-06-01", StartTime: "11:00", Duration: 1},
			want:  false,
		},
		{
			name:  "touching start-to-end does not conflict",
			other: Slot{Date: "2025-06-01", StartTime: "08:00", Duration: 1},
			want:  false,
		},
		{
			name:  "enclosing span overlaps",
			other: Slot{Date: "2025-06-01", StartTime: "08:00", Duration: 6},
			want:  true,
		},
		{
			name:  "different day never overlaps",
			other: Slot{Date: "2025-06-02", StartTime: "09:00", Duration: 2},
			want:  false,
		},
		{
			name:  "disjoint span",
			other: Slot{Date: "2025-06-01", StartTime: "13:00", Duration: 1},
			want:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Fatalf("Overlaps(%+v) = %v, want %v", tc.other, got, tc.want)
			}
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Fatalf("Overlaps is not symmetric for %+v", tc.other)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	t.Run("parses minutes since midnight", func(t *testing.T) {
		minutes, err := ParseClock("14:45")
		if err != nil {
			t.Fatalf("ParseClock returned error: %v", err)
		}
		if minutes != 14*60+45 {
			t.Fatalf("ParseClock = %d, want %d", minutes, 14*60+45)
		}
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		for _, value := range []string{"", "25:00", "9am", "09:60"} {
			if _, err := ParseClock(value); err == nil {
				t.Fatalf("ParseClock(%q) accepted malformed input", value)
			}
		}
	})
}

func TestOnGranularity(t *testing.T) {
	for value, want := range map[string]bool{
		"09:00": true,
		"09:15": true,
		"09:45": true,
		"09:10": false,
		"bogus": false,
	} {
		if got := OnGranularity(value); got != want {
			t.Fatalf("OnGranularity(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestCrossesMidnight(t *testing.T) {
	if (Slot{Date: "2025-06-01", StartTime: "22:00", Duration: 2}).CrossesMidnight() {
		t.Fatal("slot ending exactly at midnight should not cross it")
	}
	if !(Slot{Date: "2025-06-01", StartTime: "23:00", Duration: 2}).CrossesMidnight() {
		t.Fatal("slot passing midnight should be flagged")
	}
}

func TestFindConflict(t *testing.T) {
	existing := []Booking{
		{ID: "b-1", HallID: "hall-1", Date: "2025-06-01", StartTime: "09:00", Duration: 2, Status: StatusPending},
		{ID: "b-2", HallID: "hall-1", Date: "2025-06-01", StartTime: "14:00", Duration: 1, Status: StatusRejected},
		{ID: "b-3", HallID: "hall-2", Date: "2025-06-01", StartTime: "09:00", Duration: 2, Status: StatusApproved},
	}

	t.Run("overlapping pending booking blocks", func(t *testing.T) {
		conflict, ok := FindConflict(existing, "hall-1", Slot{Date: "2025-06-01", StartTime: "10:00", Duration: 1})
		if !ok {
			t.Fatal("expected conflict")
		}
		if conflict.ID != "b-1" {
			t.Fatalf("conflicting booking = %s, want b-1", conflict.ID)
		}
	})

	t.Run("boundary touch is allowed", func(t *testing.T) {
		if _, ok := FindConflict(existing, "hall-1", Slot{Date: "2025-06-01", StartTime: "11:00", Duration: 1}); ok {
			t.Fatal("boundary-touching slot should not conflict")
		}
	})

	t.Run("rejected bookings never block", func(t *testing.T) {
		if _, ok := FindConflict(existing, "hall-1", Slot{Date: "2025-06-01", StartTime: "14:00", Duration: 1}); ok {
			t.Fatal("rejected booking should not block the slot")
		}
	})

	t.Run("other halls are independent", func(t *testing.T) {
		if _, ok := FindConflict(existing, "hall-3", Slot{Date: "2025-06-01", StartTime: "09:00", Duration: 2}); ok {
			t.Fatal("empty hall should not conflict")
		}
	})
}
