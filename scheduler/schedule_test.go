package scheduler

import (
	"testing"
	"time"
)

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		value  string
		hour   int
		minute int
	}{
		{value: "18:00", hour: 18, minute: 0},
		{value: "00:00", hour: 0, minute: 0},
		{value: "23:59", hour: 23, minute: 59},
		{value: "7:05", hour: 7, minute: 5},
	}
	for _, tt := range tests {
		s, err := ParseSchedule(tt.value)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.value, err)
		}
		if s.hour != tt.hour || s.minute != tt.minute {
			t.Fatalf("parse %q = %02d:%02d, want %02d:%02d", tt.value, s.hour, s.minute, tt.hour, tt.minute)
		}
	}
}

func TestParseScheduleRejectsInvalid(t *testing.T) {
	for _, value := range []string{"", "18", "24:00", "18:60", "-1:30", "ab:cd"} {
		if _, err := ParseSchedule(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestScheduleMatches(t *testing.T) {
	s, err := ParseSchedule("18:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !s.Matches(time.Date(2025, 6, 1, 18, 0, 30, 0, time.UTC)) {
		t.Fatalf("expected match inside the trigger minute")
	}
	if s.Matches(time.Date(2025, 6, 1, 18, 1, 0, 0, time.UTC)) {
		t.Fatalf("expected no match one minute later")
	}
	if s.Matches(time.Date(2025, 6, 1, 17, 59, 59, 0, time.UTC)) {
		t.Fatalf("expected no match one second before")
	}
}

func TestScheduleTriggerKey(t *testing.T) {
	s, err := ParseSchedule("18:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	now := time.Date(2025, 6, 1, 18, 0, 12, 0, time.UTC)
	key := s.TriggerKey(now)
	if key != "reminder:2025-06-01T18:00" {
		t.Fatalf("unexpected trigger key: %q", key)
	}
	later := now.Add(40 * time.Second)
	if s.TriggerKey(later) != key {
		t.Fatalf("expected same key for the same trigger minute")
	}
	tomorrow := now.Add(24 * time.Hour)
	if s.TriggerKey(tomorrow) == key {
		t.Fatalf("expected a different key the next day")
	}
}

func TestScheduleString(t *testing.T) {
	s, err := ParseSchedule("7:05")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.String() != "07:05" {
		t.Fatalf("unexpected string form: %q", s.String())
	}
}
