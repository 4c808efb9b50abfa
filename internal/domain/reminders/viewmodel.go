package reminders

import (
	"context"
	"fmt"
	"strings"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/internal/domain/notify"
	"daily-planner-go/internal/domain/viewstate"
	"daily-planner-go/pkg/logger"
)

type API interface {
	ListReminders(ctx context.Context) ([]Reminder, error)
	CreateReminder(ctx context.Context, input CreateInput) (Reminder, error)
	UpdateReminder(ctx context.Context, id int64, input UpdateInput) (Reminder, error)
	DeleteReminder(ctx context.Context, id int64) error
}

// ViewModel mirrors the reminders stored on the server.
type ViewModel struct {
	api       API
	scheduler notify.Scheduler
	log       logger.Logger
	items     *viewstate.Collection[Reminder]
}

func NewViewModel(api API, scheduler notify.Scheduler, log logger.Logger, discardStale bool) *ViewModel {
	return &ViewModel{
		api:       api,
		scheduler: scheduler,
		log:       log,
		items:     viewstate.NewCollection[Reminder](discardStale),
	}
}

func hasID(id int64) func(Reminder) bool {
	return func(r Reminder) bool { return r.ID == id }
}

func (vm *ViewModel) Load(ctx context.Context) error {
	ticket := vm.items.BeginLoad()

	items, err := vm.api.ListReminders(ctx)
	if err != nil {
		vm.log.BusinessError("reminders.load: failed", err)
	}
	vm.items.FinishLoad(ticket, items, err)
	return err
}

func (vm *ViewModel) Create(ctx context.Context, input CreateInput) (Reminder, error) {
	if err := validateCreate(&input); err != nil {
		vm.items.Fail(err)
		return Reminder{}, err
	}

	reminder, err := vm.api.CreateReminder(ctx, input)
	if err != nil {
		vm.log.BusinessError("reminders.create: failed", err)
		vm.items.Fail(err)
		return Reminder{}, err
	}

	vm.items.Prepend(reminder)
	return reminder, nil
}

func (vm *ViewModel) Update(ctx context.Context, id int64, input UpdateInput) error {
	if input.ScheduledTime != nil {
		clock, err := normalizeClock(*input.ScheduledTime)
		if err != nil {
			vm.items.Fail(err)
			return err
		}
		input.ScheduledTime = &clock
	}

	reminder, err := vm.api.UpdateReminder(ctx, id, input)
	if err != nil {
		vm.log.BusinessError("reminders.update: failed", err, "reminder_id", id)
		vm.items.Fail(err)
		return err
	}

	vm.items.ReplaceFirst(hasID(id), reminder)
	return nil
}

// SetEnabled switches a reminder on or off.
func (vm *ViewModel) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	return vm.Update(ctx, id, UpdateInput{IsEnabled: &enabled})
}

// Delete removes a reminder. Unknown ids are a no-op.
func (vm *ViewModel) Delete(ctx context.Context, id int64) error {
	if _, ok := vm.items.Find(hasID(id)); !ok {
		return nil
	}

	if err := vm.api.DeleteReminder(ctx, id); err != nil {
		vm.log.BusinessError("reminders.delete: failed", err, "reminder_id", id)
		vm.items.Fail(err)
		return err
	}

	vm.items.RemoveWhere(hasID(id))
	return nil
}

// Reset forgets the loaded reminders and the last error.
func (vm *ViewModel) Reset() {
	vm.items.Reset()
}

func (vm *ViewModel) Reminders() []Reminder {
	return vm.items.Items()
}

// Enabled returns the enabled reminders of one type.
func (vm *ViewModel) Enabled(kind Type) []Reminder {
	var result []Reminder
	for _, r := range vm.items.Items() {
		if r.IsEnabled && r.ReminderType == kind {
			result = append(result, r)
		}
	}
	return result
}

// ScheduleLocal mirrors the enabled bedtime and plan reminders into the
// local scheduler and cancels the ones that are off. Water reminders follow
// the device settings instead.
func (vm *ViewModel) ScheduleLocal(ctx context.Context, userName string) error {
	var notifications []notify.Notification
	if bedtime := vm.Enabled(TypeBedtime); len(bedtime) > 0 {
		hour, minute, err := ParseClock(bedtime[0].ScheduledTime)
		if err != nil {
			vm.log.BusinessError("reminders.schedule: bad bedtime", err, "reminder_id", bedtime[0].ID)
		} else {
			notifications = append(notifications, notify.BedtimeReminder(hour, minute))
		}
	}
	if len(vm.Enabled(TypePlan)) > 0 {
		notifications = append(notifications, notify.PlanReminder(userName))
	}

	err := notify.Replace(ctx, vm.scheduler, []string{notify.BedtimeID, notify.PlanReminderID}, notifications)
	if err != nil {
		vm.log.InternalError("reminders.schedule: failed", err)
		vm.items.Fail(err)
		return err
	}
	vm.log.Debug("reminders.schedule: applied", "count", len(notifications))
	return nil
}

func (vm *ViewModel) Snapshot() Snapshot {
	state := vm.items.State()
	return Snapshot{
		Reminders: state.Items,
		IsLoading: state.IsLoading,
		Error:     state.Error,
	}
}

func validateCreate(input *CreateInput) error {
	switch input.ReminderType {
	case TypeWater, TypeBedtime, TypePlan:
	default:
		return apierr.Invalid("reminder_type", "choose water, bedtime or plan")
	}
	clock, err := normalizeClock(input.ScheduledTime)
	if err != nil {
		return err
	}
	input.ScheduledTime = clock
	input.Content = strings.TrimSpace(input.Content)
	return nil
}

func normalizeClock(value string) (string, error) {
	hour, minute, err := ParseClock(value)
	if err != nil {
		return "", apierr.Invalid("scheduled_time", "use HH:MM")
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
