package reminders

import (
	"context"
	"testing"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/internal/domain/notify"
	"daily-planner-go/internal/repository/inmemory"
	"daily-planner-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemindersAPI struct {
	listed     []Reminder
	lastCreate CreateInput
	err        error
	calls      int
	nextID     int64
}

func (f *fakeRemindersAPI) ListReminders(context.Context) ([]Reminder, error) {
	f.calls++
	return f.listed, f.err
}

func (f *fakeRemindersAPI) CreateReminder(_ context.Context, input CreateInput) (Reminder, error) {
	f.calls++
	f.lastCreate = input
	if f.err != nil {
		return Reminder{}, f.err
	}
	f.nextID++
	return Reminder{ID: f.nextID, ReminderType: input.ReminderType, ScheduledTime: input.ScheduledTime, Content: input.Content, IsEnabled: true}, nil
}

func (f *fakeRemindersAPI) UpdateReminder(_ context.Context, id int64, input UpdateInput) (Reminder, error) {
	f.calls++
	if f.err != nil {
		return Reminder{}, f.err
	}
	r := Reminder{ID: id, ReminderType: TypeWater, ScheduledTime: "08:00", IsEnabled: true}
	if input.IsEnabled != nil {
		r.IsEnabled = *input.IsEnabled
	}
	if input.ScheduledTime != nil {
		r.ScheduledTime = *input.ScheduledTime
	}
	return r, nil
}

func (f *fakeRemindersAPI) DeleteReminder(context.Context, int64) error {
	f.calls++
	return f.err
}

func TestCreateNormalizesClockAndPrepends(t *testing.T) {
	api := &fakeRemindersAPI{}
	vm := NewViewModel(api, inmemory.NewScheduler(), logger.Nop(), false)
	ctx := context.Background()

	_, err := vm.Create(ctx, CreateInput{ReminderType: TypeWater, ScheduledTime: "noon"})
	require.Error(t, err)

	first, err := vm.Create(ctx, CreateInput{ReminderType: TypeWater, ScheduledTime: "8:05", Content: " drink "})
	require.NoError(t, err)
	second, err := vm.Create(ctx, CreateInput{ReminderType: TypeBedtime, ScheduledTime: "22:30"})
	require.NoError(t, err)

	assert.Equal(t, "drink", first.Content)
	assert.Equal(t, "08:05", first.ScheduledTime)
	assert.Equal(t, []Reminder{second, first}, vm.Reminders())
}

func TestCreateValidation(t *testing.T) {
	api := &fakeRemindersAPI{}
	vm := NewViewModel(api, inmemory.NewScheduler(), logger.Nop(), false)

	_, err := vm.Create(context.Background(), CreateInput{ReminderType: "lunch", ScheduledTime: "12:00"})
	require.ErrorIs(t, err, apierr.ErrInvalidInput)

	_, err = vm.Create(context.Background(), CreateInput{ReminderType: TypePlan, ScheduledTime: "25:00"})
	require.ErrorIs(t, err, apierr.ErrInvalidInput)

	assert.Equal(t, 0, api.calls)
}

func TestSetEnabledAndDelete(t *testing.T) {
	api := &fakeRemindersAPI{listed: []Reminder{{ID: 1, ReminderType: TypeWater, ScheduledTime: "08:00", IsEnabled: true}}}
	vm := NewViewModel(api, inmemory.NewScheduler(), logger.Nop(), false)
	ctx := context.Background()
	require.NoError(t, vm.Load(ctx))

	require.NoError(t, vm.SetEnabled(ctx, 1, false))
	assert.False(t, vm.Reminders()[0].IsEnabled)
	assert.Empty(t, vm.Enabled(TypeWater))

	require.NoError(t, vm.Delete(ctx, 1))
	require.NoError(t, vm.Delete(ctx, 1))
	assert.Empty(t, vm.Reminders())
	assert.Equal(t, 3, api.calls)
}

func TestFailuresKeepCollection(t *testing.T) {
	seed := []Reminder{{ID: 1, ReminderType: TypeWater, ScheduledTime: "08:00", IsEnabled: true}}
	api := &fakeRemindersAPI{listed: seed}
	vm := NewViewModel(api, inmemory.NewScheduler(), logger.Nop(), false)
	ctx := context.Background()
	require.NoError(t, vm.Load(ctx))

	api.err = &apierr.ServerError{Status: 403, Message: "access denied"}
	require.Error(t, vm.SetEnabled(ctx, 1, false))
	require.Error(t, vm.Delete(ctx, 1))
	_, err := vm.Create(ctx, CreateInput{ReminderType: TypePlan, ScheduledTime: "21:00"})
	require.Error(t, err)

	assert.Equal(t, seed, vm.Reminders())
	assert.Equal(t, "access denied", vm.Snapshot().Error)
}

func TestScheduleLocalMirrorsEnabledReminders(t *testing.T) {
	api := &fakeRemindersAPI{listed: []Reminder{
		{ID: 1, ReminderType: TypeBedtime, ScheduledTime: "22:45", IsEnabled: true},
		{ID: 2, ReminderType: TypePlan, ScheduledTime: "21:00", IsEnabled: true},
		{ID: 3, ReminderType: TypeWater, ScheduledTime: "08:00", IsEnabled: true},
	}}
	scheduler := inmemory.NewScheduler()
	vm := NewViewModel(api, scheduler, logger.Nop(), false)
	ctx := context.Background()
	require.NoError(t, vm.Load(ctx))

	require.NoError(t, vm.ScheduleLocal(ctx, "Ali"))

	pending := scheduler.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, notify.BedtimeID, pending[0].ID)
	assert.Equal(t, "22:45", pending[0].Clock())
	assert.Equal(t, notify.PlanReminderID, pending[1].ID)
	assert.Contains(t, pending[1].Body, "Ali")

	require.NoError(t, vm.SetEnabled(ctx, 2, false))
	require.NoError(t, vm.ScheduleLocal(ctx, "Ali"))
	assert.False(t, scheduler.Has(notify.PlanReminderID))
	assert.True(t, scheduler.Has(notify.BedtimeID))
}

func TestResetForgetsReminders(t *testing.T) {
	api := &fakeRemindersAPI{listed: []Reminder{{ID: 1, ReminderType: TypePlan, ScheduledTime: "21:00", IsEnabled: true}}}
	vm := NewViewModel(api, inmemory.NewScheduler(), logger.Nop(), false)
	require.NoError(t, vm.Load(context.Background()))

	vm.Reset()

	assert.Empty(t, vm.Reminders())
	assert.Empty(t, vm.Snapshot().Error)
}
