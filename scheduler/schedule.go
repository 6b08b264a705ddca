package scheduler

import (
	"fmt"
	"time"
)

// Schedule is a daily wall-clock trigger time.
type Schedule struct {
	hour   int
	minute int
}

// ParseSchedule parses a trigger time in 24h "HH:MM" form.
func ParseSchedule(value string) (Schedule, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return Schedule{}, fmt.Errorf("invalid schedule %q: %w", value, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Schedule{}, fmt.Errorf("invalid schedule %q: out of range", value)
	}
	return Schedule{hour: hour, minute: minute}, nil
}

// Matches reports whether now falls within the trigger minute.
func (s Schedule) Matches(now time.Time) bool {
	return now.Hour() == s.hour && now.Minute() == s.minute
}

// TriggerKey identifies one concrete firing of the schedule: the trigger
// minute on a given day. Two observations of the same minute produce the
// same key, which is what the fire guard deduplicates on.
func (s Schedule) TriggerKey(now time.Time) string {
	return "reminder:" + now.Format("2006-01-02") + "T" + s.String()
}

func (s Schedule) String() string {
	return fmt.Sprintf("%02d:%02d", s.hour, s.minute)
}
