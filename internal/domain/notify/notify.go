// Package notify plans local reminders and hands them to a Scheduler.
// Delivering them is the host platform's job.
package notify

import (
	"context"
	"fmt"
)

const (
	BedtimeID      = "bedtime"
	PlanReminderID = "plan_reminder"

	// MaxWaterSlots bounds how many water reminder ids are ever cancelled.
	MaxWaterSlots = 24

	waterIDPrefix    = "water_"
	waterCutoffHour  = 22
	planReminderHour = 21
)

// Notification is a daily wall-clock trigger.
type Notification struct {
	ID      string `json:"id"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Repeats bool   `json:"repeats"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

func (n Notification) Clock() string {
	return fmt.Sprintf("%02d:%02d", n.Hour, n.Minute)
}

type Scheduler interface {
	Schedule(ctx context.Context, notification Notification) error
	Cancel(ctx context.Context, ids ...string) error
}

func WaterID(index int) string {
	return fmt.Sprintf("%s%d", waterIDPrefix, index)
}

// WaterIDs lists every id a water reminder can occupy.
func WaterIDs() []string {
	ids := make([]string, MaxWaterSlots)
	for i := range ids {
		ids[i] = WaterID(i)
	}
	return ids
}

func greeting(userName string) string {
	if userName == "" {
		return ""
	}
	return userName + "，"
}

// WaterReminders builds one repeating reminder per interval from the start
// time until 22:00. Messages rotate through a fixed set of four.
func WaterReminders(startHour, startMinute, intervalMinutes int, userName string) []Notification {
	if intervalMinutes <= 0 {
		return nil
	}

	prefix := greeting(userName)
	messages := []string{
		prefix + "该喝水啦！保持水分充足 💧",
		prefix + "休息一下，喝杯水吧 ☕",
		prefix + "补充水分时间到！💦",
		prefix + "记得喝水哦，身体需要水分 🌊",
	}

	var result []Notification
	hour, minute := startHour, startMinute
	for index := 0; hour < waterCutoffHour && index < MaxWaterSlots; index++ {
		result = append(result, Notification{
			ID:      WaterID(index),
			Hour:    hour,
			Minute:  minute,
			Repeats: true,
			Title:   "喝水提醒",
			Body:    messages[index%len(messages)],
		})

		minute += intervalMinutes
		hour += minute / 60
		minute %= 60
	}
	return result
}

func BedtimeReminder(hour, minute int) Notification {
	return Notification{
		ID:      BedtimeID,
		Hour:    hour,
		Minute:  minute,
		Repeats: true,
		Title:   "早睡提醒 🌙",
		Body:    "该准备休息了，早睡早起身体好！",
	}
}

func PlanReminder(userName string) Notification {
	return Notification{
		ID:      PlanReminderID,
		Hour:    planReminderHour,
		Minute:  0,
		Repeats: true,
		Title:   "计划提醒 📋",
		Body:    greeting(userName) + "今天还有未完成的计划，加油完成吧！",
	}
}

// Replace cancels ids and then schedules every notification in order.
func Replace(ctx context.Context, scheduler Scheduler, cancel []string, notifications []Notification) error {
	if len(cancel) > 0 {
		if err := scheduler.Cancel(ctx, cancel...); err != nil {
			return fmt.Errorf("cancel reminders: %w", err)
		}
	}
	for _, notification := range notifications {
		if err := scheduler.Schedule(ctx, notification); err != nil {
			return fmt.Errorf("schedule %s: %w", notification.ID, err)
		}
	}
	return nil
}
