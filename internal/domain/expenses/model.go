package expenses

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID        *int64          `json:"id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Note      *string         `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// createdAtLayouts are tried in order; the server has emitted every one of them.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000000Z0700",
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseCreatedAt accepts ISO-8601 with or without fractional seconds and zone.
// Values without a zone are read as UTC.
func ParseCreatedAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range createdAtLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized created_at %q", value)
}

func (e *Expense) UnmarshalJSON(data []byte) error {
	type wire struct {
		ID        *int64           `json:"id"`
		Amount    *decimal.Decimal `json:"amount"`
		Category  *string          `json:"category"`
		Note      *string          `json:"note"`
		CreatedAt *string          `json:"created_at"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Amount == nil {
		return fmt.Errorf("expense amount is missing")
	}
	if w.Category == nil {
		return fmt.Errorf("expense category is missing")
	}
	if w.CreatedAt == nil {
		return fmt.Errorf("expense created_at is missing")
	}

	createdAt, err := ParseCreatedAt(*w.CreatedAt)
	if err != nil {
		// Unparsable timestamps fall back to the decode time; the record itself is still usable.
		createdAt = time.Now().UTC()
	}

	*e = Expense{
		ID:        w.ID,
		Amount:    *w.Amount,
		Category:  *w.Category,
		Note:      w.Note,
		CreatedAt: createdAt,
	}
	return nil
}

// List decodes either a bare JSON array or the {"total":..,"expenses":[..]} envelope.
type List []Expense

func (l *List) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Expense
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var envelope struct {
		Expenses *[]Expense `json:"expenses"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	if envelope.Expenses == nil {
		return fmt.Errorf("expenses field is missing")
	}
	*l = *envelope.Expenses
	return nil
}

type CreateInput struct {
	Amount   decimal.Decimal
	Category string
	Note     *string
}

type UpdateInput struct {
	Amount   *decimal.Decimal
	Category *string
	Note     *string
}

// Period is the expense filter; unset components match everything.
type Period struct {
	Year  *int `json:"year,omitempty"`
	Month *int `json:"month,omitempty"`
}

type Snapshot struct {
	Expenses      []Expense       `json:"expenses"`
	Period        Period          `json:"period"`
	Total         decimal.Decimal `json:"total"`
	FilteredTotal decimal.Decimal `json:"filtered_total"`
	IsLoading     bool            `json:"is_loading"`
	Error         string          `json:"error,omitempty"`
}
