package reminders

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeWater   Type = "water"
	TypeBedtime Type = "bedtime"
	TypePlan    Type = "plan"
)

// Reminder is a server-side reminder. ScheduledTime is a wall-clock "HH:MM".
type Reminder struct {
	ID            int64  `json:"id"`
	ReminderType  Type   `json:"reminder_type"`
	ScheduledTime string `json:"scheduled_time"`
	Content       string `json:"content"`
	IsEnabled     bool   `json:"is_enabled"`
}

type CreateInput struct {
	ReminderType  Type   `json:"reminder_type"`
	ScheduledTime string `json:"scheduled_time"`
	Content       string `json:"content,omitempty"`
}

type UpdateInput struct {
	ScheduledTime *string `json:"scheduled_time,omitempty"`
	Content       *string `json:"content,omitempty"`
	IsEnabled     *bool   `json:"is_enabled,omitempty"`
}

type Snapshot struct {
	Reminders []Reminder `json:"reminders"`
	IsLoading bool       `json:"is_loading"`
	Error     string     `json:"error,omitempty"`
}

const clockLayout = "15:04"

// ParseClock validates an "HH:MM" wall-clock time and returns hour and minute.
func ParseClock(value string) (int, int, error) {
	parsed, err := time.Parse(clockLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, use HH:MM", value)
	}
	return parsed.Hour(), parsed.Minute(), nil
}
