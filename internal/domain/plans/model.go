package plans

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggled flips between pending and completed.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Date is a calendar day without a time component, serialized as yyyy-MM-dd.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		// The API has been seen to return full timestamps for date columns.
		t, err = time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", value)
		}
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("execution date is required")
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Plan struct {
	ID            *int64 `json:"id,omitempty"`
	Content       string `json:"content"`
	ExecutionDate Date   `json:"execution_date"`
	Status        Status `json:"status"`
}

func (p Plan) IsCompleted() bool {
	return p.Status == StatusCompleted
}

func (p *Plan) UnmarshalJSON(data []byte) error {
	type wire struct {
		ID            *int64  `json:"id"`
		Content       *string `json:"content"`
		ExecutionDate *Date   `json:"execution_date"`
		Status        Status  `json:"status"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Content == nil {
		return fmt.Errorf("plan content is missing")
	}
	if w.ExecutionDate == nil {
		return fmt.Errorf("plan execution_date is missing")
	}
	status := w.Status
	if status == "" {
		status = StatusPending
	}
	*p = Plan{
		ID:            w.ID,
		Content:       *w.Content,
		ExecutionDate: *w.ExecutionDate,
		Status:        status,
	}
	return nil
}

type CreateInput struct {
	Content       string `json:"content"`
	ExecutionDate Date   `json:"execution_date"`
}

type UpdateInput struct {
	Content *string `json:"content,omitempty"`
	Status  *Status `json:"status,omitempty"`
}

type Snapshot struct {
	Plans          []Plan  `json:"plans"`
	SelectedDate   Date    `json:"selected_date"`
	CompletedCount int     `json:"completed_count"`
	Progress       float64 `json:"progress"`
	IsLoading      bool    `json:"is_loading"`
	Error          string  `json:"error,omitempty"`
}
