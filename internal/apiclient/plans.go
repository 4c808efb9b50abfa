package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"daily-planner-go/internal/domain/plans"
)

type updatePlanRequest struct {
	Content *string       `json:"content,omitempty"`
	Status  *plans.Status `json:"status,omitempty"`
}

// ListPlans returns the plans of one day, or all plans when date is zero.
func (c *Client) ListPlans(ctx context.Context, date plans.Date) ([]plans.Plan, error) {
	path := "/plans"
	if !date.IsZero() {
		path += "?" + url.Values{"date": {date.String()}}.Encode()
	}

	var resp []plans.Plan
	if err := c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) CreatePlan(ctx context.Context, input plans.CreateInput) (plans.Plan, error) {
	var resp plans.Plan
	err := c.Do(ctx, http.MethodPost, "/plans", input, &resp)
	return resp, err
}

func (c *Client) UpdatePlan(ctx context.Context, id int64, input plans.UpdateInput) (plans.Plan, error) {
	body := updatePlanRequest{Content: input.Content, Status: input.Status}
	var resp plans.Plan
	err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/plans/%d", id), body, &resp)
	return resp, err
}

func (c *Client) DeletePlan(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/plans/%d", id), nil, nil)
}
