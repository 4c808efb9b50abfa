package water

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultDailyGoal   = 2000
	DefaultStartHour   = 8
	DefaultStartMinute = 0
	DefaultInterval    = 60

	dayLayout = "2006-01-02"

	keyRecordsPrefix   = "water_records_"
	keyReminderEnabled = "water_reminder_enabled"
	keyStartHour       = "water_start_hour"
	keyStartMinute     = "water_start_minute"
	keyInterval        = "water_interval"
	keyDailyGoal       = "water_daily_goal"
)

// Record is one drink logged on the device. Amount is in millilitres.
type Record struct {
	ID     uuid.UUID `json:"id"`
	Type   string    `json:"type"`
	Amount int       `json:"amount"`
	Time   time.Time `json:"time"`
}

// Drink is an entry of the fixed drink catalog.
type Drink struct {
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Color         string `json:"color"`
	DefaultAmount int    `json:"default_amount"`
}

func Drinks() []Drink {
	return []Drink{
		{Name: "白开水", Icon: "drop.fill", Color: "42A5F5", DefaultAmount: 250},
		{Name: "茶", Icon: "cup.and.saucer.fill", Color: "66BB6A", DefaultAmount: 200},
		{Name: "咖啡", Icon: "cup.and.saucer.fill", Color: "6D4C41", DefaultAmount: 150},
		{Name: "牛奶", Icon: "cup.and.saucer.fill", Color: "FFA726", DefaultAmount: 250},
		{Name: "奶茶", Icon: "bubbles.and.sparkles.fill", Color: "BCAAA4", DefaultAmount: 500},
		{Name: "果汁", Icon: "wineglass.fill", Color: "FFB74D", DefaultAmount: 300},
		{Name: "饮料", Icon: "waterbottle.fill", Color: "EF5350", DefaultAmount: 330},
		{Name: "其他", Icon: "plus.circle", Color: "90A4AE", DefaultAmount: 200},
	}
}

// DrinkByName looks up a catalog entry.
func DrinkByName(name string) (Drink, bool) {
	for _, drink := range Drinks() {
		if drink.Name == name {
			return drink, true
		}
	}
	return Drink{}, false
}

type Settings struct {
	DailyGoal       int  `json:"daily_goal"`
	ReminderEnabled bool `json:"reminder_enabled"`
	StartHour       int  `json:"start_hour"`
	StartMinute     int  `json:"start_minute"`
	IntervalMinutes int  `json:"interval_minutes"`
}

func DefaultSettings() Settings {
	return Settings{
		DailyGoal:       DefaultDailyGoal,
		StartHour:       DefaultStartHour,
		StartMinute:     DefaultStartMinute,
		IntervalMinutes: DefaultInterval,
	}
}

// withDefaults treats zero values as unset. A zero start hour therefore
// means 08:00, matching what was stored by earlier clients.
func (s Settings) withDefaults() Settings {
	if s.DailyGoal <= 0 {
		s.DailyGoal = DefaultDailyGoal
	}
	if s.StartHour <= 0 {
		s.StartHour = DefaultStartHour
	}
	if s.IntervalMinutes <= 0 {
		s.IntervalMinutes = DefaultInterval
	}
	return s
}

type Snapshot struct {
	Day        string   `json:"day"`
	Records    []Record `json:"records"`
	TodayTotal int      `json:"today_total"`
	Progress   float64  `json:"progress"`
	Settings   Settings `json:"settings"`
	Error      string   `json:"error,omitempty"`
}

func recordsKey(day string) string {
	return keyRecordsPrefix + day
}

// TotalOf sums record amounts.
func TotalOf(records []Record) int {
	total := 0
	for _, r := range records {
		total += r.Amount
	}
	return total
}

// ProgressOf is total/goal capped at 1.
func ProgressOf(total, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	progress := float64(total) / float64(goal)
	if progress > 1 {
		return 1
	}
	return progress
}
