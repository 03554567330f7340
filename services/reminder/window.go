package reminder

import (
	"time"

	"lunchbox/models"
)

// IsWeekday reports whether t falls Monday through Friday.
func IsWeekday(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// TriggerTime returns the HH:MM clock time on t's calendar day.
func TriggerTime(t time.Time, clock string) (time.Time, error) {
	hour, minute, err := models.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, t.Location()), nil
}
