package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaterRemindersStopBeforeCutoff(t *testing.T) {
	items := WaterReminders(20, 30, 45, "")

	require.Len(t, items, 2)
	assert.Equal(t, "water_0", items[0].ID)
	assert.Equal(t, "20:30", items[0].Clock())
	assert.Equal(t, "water_1", items[1].ID)
	assert.Equal(t, "21:15", items[1].Clock())
	assert.True(t, items[1].Repeats)
}

func TestWaterRemindersRotateMessagesWithGreeting(t *testing.T) {
	items := WaterReminders(8, 0, 60, "小明")

	require.Len(t, items, 14)
	assert.Contains(t, items[0].Body, "小明，")
	assert.Equal(t, items[0].Body, items[4].Body)
	assert.NotEqual(t, items[0].Body, items[1].Body)
	assert.Equal(t, "21:00", items[13].Clock())
}

func TestWaterRemindersRejectNonPositiveInterval(t *testing.T) {
	assert.Empty(t, WaterReminders(8, 0, 0, ""))
}

func TestWaterRemindersCappedAtSlotCount(t *testing.T) {
	items := WaterReminders(0, 0, 1, "")
	assert.Len(t, items, MaxWaterSlots)
}

func TestPlanAndBedtimeReminders(t *testing.T) {
	plan := PlanReminder("")
	assert.Equal(t, PlanReminderID, plan.ID)
	assert.Equal(t, "21:00", plan.Clock())
	assert.NotContains(t, plan.Body, "，今天")

	bed := BedtimeReminder(22, 45)
	assert.Equal(t, BedtimeID, bed.ID)
	assert.Equal(t, "22:45", bed.Clock())
}

type recordingScheduler struct {
	scheduled []string
	cancelled []string
	failOn    string
}

func (r *recordingScheduler) Schedule(_ context.Context, n Notification) error {
	if n.ID == r.failOn {
		return errors.New("denied")
	}
	r.scheduled = append(r.scheduled, n.ID)
	return nil
}

func (r *recordingScheduler) Cancel(_ context.Context, ids ...string) error {
	r.cancelled = append(r.cancelled, ids...)
	return nil
}

func TestReplaceCancelsThenSchedules(t *testing.T) {
	s := &recordingScheduler{}
	err := Replace(context.Background(), s, []string{BedtimeID}, []Notification{BedtimeReminder(23, 0)})

	require.NoError(t, err)
	assert.Equal(t, []string{BedtimeID}, s.cancelled)
	assert.Equal(t, []string{BedtimeID}, s.scheduled)
}

func TestReplaceStopsOnScheduleError(t *testing.T) {
	s := &recordingScheduler{failOn: "water_1"}
	err := Replace(context.Background(), s, nil, WaterReminders(8, 0, 60, ""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "water_1")
	assert.Equal(t, []string{"water_0"}, s.scheduled)
}
