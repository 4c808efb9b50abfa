package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"daily-planner-go/internal/domain/reminders"
)

func (c *Client) ListReminders(ctx context.Context) ([]reminders.Reminder, error) {
	var resp []reminders.Reminder
	if err := c.Do(ctx, http.MethodGet, "/reminders", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) CreateReminder(ctx context.Context, input reminders.CreateInput) (reminders.Reminder, error) {
	var resp reminders.Reminder
	err := c.Do(ctx, http.MethodPost, "/reminders", input, &resp)
	return resp, err
}

func (c *Client) UpdateReminder(ctx context.Context, id int64, input reminders.UpdateInput) (reminders.Reminder, error) {
	var resp reminders.Reminder
	err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/reminders/%d", id), input, &resp)
	return resp, err
}

func (c *Client) DeleteReminder(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/reminders/%d", id), nil, nil)
}
