package models

import (
	"fmt"
	"time"
)

const (
	DefaultMenuUpdateReminderTime = "11:00"
	DefaultOrderReminderTime      = "10:30"
)

// Settings holds the admin-editable reminder trigger times as HH:MM strings.
type Settings struct {
	MenuUpdateReminderTime string    `json:"menuUpdateReminderTime" bson:"menuUpdateReminderTime"`
	OrderReminderTime      string    `json:"orderReminderTime" bson:"orderReminderTime"`
	UpdatedAt              time.Time `json:"updatedAt" bson:"updatedAt"`
}

// WithDefaults fills unset times.
func (s Settings) WithDefaults() Settings {
	if s.MenuUpdateReminderTime == "" {
		s.MenuUpdateReminderTime = DefaultMenuUpdateReminderTime
	}
	if s.OrderReminderTime == "" {
		s.OrderReminderTime = DefaultOrderReminderTime
	}
	return s
}

// Validate checks both times parse as HH:MM.
func (s Settings) Validate() error {
	if _, _, err := ParseClock(s.MenuUpdateReminderTime); err != nil {
		return NewValidationError("menuUpdateReminderTime", err.Error())
	}
	if _, _, err := ParseClock(s.OrderReminderTime); err != nil {
		return NewValidationError("orderReminderTime", err.Error())
	}
	return nil
}

// ParseClock parses a 24h HH:MM string.
func ParseClock(v string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", v)
	}
	return t.Hour(), t.Minute(), nil
}
