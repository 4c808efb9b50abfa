package water

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/internal/domain/notify"
	"daily-planner-go/internal/domain/prefs"
	"daily-planner-go/pkg/logger"
	"github.com/google/uuid"
)

// ViewModel tracks today's drinks in device storage. Records are kept per
// calendar day and the list is rebuilt when the day changes.
type ViewModel struct {
	store     prefs.Store
	scheduler notify.Scheduler
	log       logger.Logger
	now       func() time.Time

	mu         sync.Mutex
	day        string
	records    []Record
	settings   Settings
	errMessage string
}

func NewViewModel(store prefs.Store, scheduler notify.Scheduler, log logger.Logger, now func() time.Time) *ViewModel {
	if now == nil {
		now = time.Now
	}
	return &ViewModel{
		store:     store,
		scheduler: scheduler,
		log:       log,
		now:       now,
		settings:  DefaultSettings(),
	}
}

func (vm *ViewModel) today() string {
	return vm.now().Format(dayLayout)
}

// Load reads today's records and the settings from storage.
func (vm *ViewModel) Load(ctx context.Context) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.loadLocked(ctx, vm.today())
}

func (vm *ViewModel) loadLocked(ctx context.Context, day string) error {
	records, err := vm.readRecords(ctx, day)
	if err != nil {
		vm.errMessage = apierr.Message(err)
		vm.log.InternalError("water.load: read records failed", err, "day", day)
		return err
	}
	settings, err := vm.readSettings(ctx)
	if err != nil {
		vm.errMessage = apierr.Message(err)
		vm.log.InternalError("water.load: read settings failed", err)
		return err
	}

	vm.day = day
	vm.records = records
	vm.settings = settings
	vm.errMessage = ""
	return nil
}

// syncDayLocked rebuilds the list when the calendar day moved on since the last call.
func (vm *ViewModel) syncDayLocked(ctx context.Context) error {
	today := vm.today()
	if vm.day == today {
		return nil
	}
	if vm.day != "" {
		vm.log.Info("water.day: rolled over", "from", vm.day, "to", today)
	}
	return vm.loadLocked(ctx, today)
}

func (vm *ViewModel) readRecords(ctx context.Context, day string) ([]Record, error) {
	raw, err := prefs.GetString(ctx, vm.store, recordsKey(day))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		// Unreadable day data is dropped rather than blocking the screen.
		vm.log.BusinessError("water.load: stored records unreadable", err, "day", day)
		return []Record{}, nil
	}
	for i := range records {
		if records[i].ID == uuid.Nil {
			records[i].ID = uuid.New()
		}
	}
	return records, nil
}

func (vm *ViewModel) readSettings(ctx context.Context) (Settings, error) {
	var s Settings
	var err error
	if s.ReminderEnabled, err = prefs.GetBool(ctx, vm.store, keyReminderEnabled); err != nil {
		return Settings{}, err
	}
	if s.StartHour, err = prefs.GetInt(ctx, vm.store, keyStartHour); err != nil {
		return Settings{}, err
	}
	if s.StartMinute, err = prefs.GetInt(ctx, vm.store, keyStartMinute); err != nil {
		return Settings{}, err
	}
	if s.IntervalMinutes, err = prefs.GetInt(ctx, vm.store, keyInterval); err != nil {
		return Settings{}, err
	}
	if s.DailyGoal, err = prefs.GetInt(ctx, vm.store, keyDailyGoal); err != nil {
		return Settings{}, err
	}
	return s.withDefaults(), nil
}

func (vm *ViewModel) writeRecords(ctx context.Context, day string, records []Record) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode water records: %w", err)
	}
	return vm.store.Set(ctx, recordsKey(day), string(payload))
}

func (vm *ViewModel) writeSettings(ctx context.Context, s Settings) error {
	if err := prefs.SetBool(ctx, vm.store, keyReminderEnabled, s.ReminderEnabled); err != nil {
		return err
	}
	for key, value := range map[string]int{
		keyStartHour:   s.StartHour,
		keyStartMinute: s.StartMinute,
		keyInterval:    s.IntervalMinutes,
		keyDailyGoal:   s.DailyGoal,
	} {
		if err := prefs.SetInt(ctx, vm.store, key, value); err != nil {
			return err
		}
	}
	return nil
}

// Add logs a drink at the current time and puts it first.
func (vm *ViewModel) Add(ctx context.Context, drinkType string, amount int) (Record, error) {
	drinkType = strings.TrimSpace(drinkType)
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if amount <= 0 {
		err := apierr.Invalid("amount", "amount must be greater than zero")
		vm.errMessage = apierr.Message(err)
		return Record{}, err
	}
	if drinkType == "" {
		err := apierr.Invalid("type", "choose a drink")
		vm.errMessage = apierr.Message(err)
		return Record{}, err
	}
	if err := vm.syncDayLocked(ctx); err != nil {
		return Record{}, err
	}

	record := Record{ID: uuid.New(), Type: drinkType, Amount: amount, Time: vm.now()}
	next := append([]Record{record}, vm.records...)
	if err := vm.writeRecords(ctx, vm.day, next); err != nil {
		vm.errMessage = apierr.Message(err)
		vm.log.InternalError("water.add: save failed", err)
		return Record{}, err
	}

	vm.records = next
	vm.errMessage = ""
	return record, nil
}

// Delete removes a record by id. Unknown ids are a no-op.
func (vm *ViewModel) Delete(ctx context.Context, id uuid.UUID) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.syncDayLocked(ctx); err != nil {
		return err
	}
	for i, r := range vm.records {
		if r.ID == id {
			return vm.removeLocked(ctx, i)
		}
	}
	return nil
}

// DeleteAt removes the record at index in the most-recent-first list.
func (vm *ViewModel) DeleteAt(ctx context.Context, index int) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.syncDayLocked(ctx); err != nil {
		return err
	}
	if index < 0 || index >= len(vm.records) {
		err := apierr.Invalid("index", "no record at that position")
		vm.errMessage = apierr.Message(err)
		return err
	}
	return vm.removeLocked(ctx, index)
}

func (vm *ViewModel) removeLocked(ctx context.Context, index int) error {
	next := make([]Record, 0, len(vm.records)-1)
	next = append(next, vm.records[:index]...)
	next = append(next, vm.records[index+1:]...)

	if err := vm.writeRecords(ctx, vm.day, next); err != nil {
		vm.errMessage = apierr.Message(err)
		vm.log.InternalError("water.delete: save failed", err)
		return err
	}
	vm.records = next
	vm.errMessage = ""
	return nil
}

// UpdateSettings persists new settings. Zero goal, start hour and interval fall back to defaults.
func (vm *ViewModel) UpdateSettings(ctx context.Context, s Settings) (Settings, error) {
	if err := validateSettings(s); err != nil {
		vm.mu.Lock()
		vm.errMessage = apierr.Message(err)
		vm.mu.Unlock()
		return Settings{}, err
	}
	s = s.withDefaults()

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.writeSettings(ctx, s); err != nil {
		vm.errMessage = apierr.Message(err)
		vm.log.InternalError("water.settings: save failed", err)
		return Settings{}, err
	}
	vm.settings = s
	vm.errMessage = ""
	return s, nil
}

func validateSettings(s Settings) error {
	switch {
	case s.DailyGoal < 0:
		return apierr.Invalid("daily_goal", "daily goal cannot be negative")
	case s.StartHour < 0 || s.StartHour > 23:
		return apierr.Invalid("start_hour", "start hour must be between 0 and 23")
	case s.StartMinute < 0 || s.StartMinute > 59:
		return apierr.Invalid("start_minute", "start minute must be between 0 and 59")
	case s.IntervalMinutes < 0:
		return apierr.Invalid("interval_minutes", "interval cannot be negative")
	}
	return nil
}

// ScheduleReminders installs the water reminders when enabled and removes
// them otherwise.
func (vm *ViewModel) ScheduleReminders(ctx context.Context, userName string) error {
	s := vm.Settings()

	var err error
	if s.ReminderEnabled {
		reminders := notify.WaterReminders(s.StartHour, s.StartMinute, s.IntervalMinutes, userName)
		err = notify.Replace(ctx, vm.scheduler, notify.WaterIDs(), reminders)
	} else {
		err = vm.scheduler.Cancel(ctx, notify.WaterIDs()...)
	}
	if err != nil {
		vm.log.InternalError("water.reminders: schedule failed", err)
		vm.mu.Lock()
		vm.errMessage = apierr.Message(err)
		vm.mu.Unlock()
	}
	return err
}

func (vm *ViewModel) Settings() Settings {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.settings
}

// Records returns today's records, most recent first.
func (vm *ViewModel) Records(ctx context.Context) []Record {
	return vm.Snapshot(ctx).Records
}

func (vm *ViewModel) TodayTotal(ctx context.Context) int {
	return vm.Snapshot(ctx).TodayTotal
}

func (vm *ViewModel) Progress(ctx context.Context) float64 {
	return vm.Snapshot(ctx).Progress
}

func (vm *ViewModel) Snapshot(ctx context.Context) Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.syncDayLocked(ctx); err != nil {
		vm.log.BusinessError("water.snapshot: day sync failed", err)
	}

	records := append([]Record{}, vm.records...)
	total := TotalOf(records)
	return Snapshot{
		Day:        vm.day,
		Records:    records,
		TodayTotal: total,
		Progress:   ProgressOf(total, vm.settings.DailyGoal),
		Settings:   vm.settings,
		Error:      vm.errMessage,
	}
}
