package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"daily-planner-go/internal/domain/admin"
)

// Admin endpoints are relative to the admin base URL, so these methods are
// meant for a Client built with that URL and the admin token store.

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (c *Client) AdminLogin(ctx context.Context, username, password string) (admin.LoginResponse, error) {
	var resp admin.LoginResponse
	err := c.DoPublic(ctx, http.MethodPost, "/login", adminLoginRequest{Username: username, Password: password}, &resp)
	return resp, err
}

func (c *Client) AdminListUsers(ctx context.Context) ([]admin.UserRow, error) {
	var resp admin.UserList
	if err := c.Do(ctx, http.MethodGet, "/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *Client) AdminCreateUser(ctx context.Context, input admin.CreateUserInput) (admin.UserRow, error) {
	var resp admin.CreateUserResponse
	if err := c.Do(ctx, http.MethodPost, "/users", input, &resp); err != nil {
		return admin.UserRow{}, err
	}
	return resp.User, nil
}

func (c *Client) AdminResetPassword(ctx context.Context, userID int64, newPassword string) error {
	body := resetPasswordRequest{NewPassword: newPassword}
	return c.Do(ctx, http.MethodPut, fmt.Sprintf("/users/%d/password", userID), body, nil)
}
