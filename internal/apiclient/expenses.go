package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"daily-planner-go/internal/domain/expenses"
)

type createExpenseRequest struct {
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Note     string      `json:"note"`
}

type updateExpenseRequest struct {
	Amount   *json.Number `json:"amount,omitempty"`
	Category *string      `json:"category,omitempty"`
	Note     *string      `json:"note,omitempty"`
}

func (c *Client) ListExpenses(ctx context.Context) ([]expenses.Expense, error) {
	var resp expenses.List
	if err := c.Do(ctx, http.MethodGet, "/expenses", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) CreateExpense(ctx context.Context, input expenses.CreateInput) (expenses.Expense, error) {
	body := createExpenseRequest{
		Amount:   json.Number(input.Amount.String()),
		Category: input.Category,
	}
	if input.Note != nil {
		body.Note = *input.Note
	}

	var resp expenses.Expense
	err := c.Do(ctx, http.MethodPost, "/expenses", body, &resp)
	return resp, err
}

func (c *Client) UpdateExpense(ctx context.Context, id int64, input expenses.UpdateInput) (expenses.Expense, error) {
	body := updateExpenseRequest{Category: input.Category, Note: input.Note}
	if input.Amount != nil {
		amount := json.Number(input.Amount.String())
		body.Amount = &amount
	}

	var resp expenses.Expense
	err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/expenses/%d", id), body, &resp)
	return resp, err
}

func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/expenses/%d", id), nil, nil)
}
