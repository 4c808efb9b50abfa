package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"daily-planner-go/internal/domain/session"
)

type loginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login exchanges an account (username or phone number) and password for a token.
func (c *Client) Login(ctx context.Context, account, password string) (session.AuthResponse, error) {
	var resp session.AuthResponse
	err := c.DoPublic(ctx, http.MethodPost, "/auth/login", loginRequest{Account: account, Password: password}, &resp)
	return resp, err
}

func (c *Client) Register(ctx context.Context, input session.RegisterInput) (session.AuthResponse, error) {
	body := registerRequest{
		Username:    input.Username,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
	}
	var resp session.AuthResponse
	err := c.DoPublic(ctx, http.MethodPost, "/auth/register", body, &resp)
	return resp, err
}

func (c *Client) Verify(ctx context.Context) (session.VerifyResponse, error) {
	var resp session.VerifyResponse
	err := c.Do(ctx, http.MethodGet, "/auth/verify", nil, &resp)
	return resp, err
}

func (c *Client) GetProfile(ctx context.Context) (session.User, error) {
	var resp userPayload
	if err := c.Do(ctx, http.MethodGet, "/user/profile", nil, &resp); err != nil {
		return session.User{}, err
	}
	return resp.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update session.ProfileUpdate) (session.User, error) {
	var resp userPayload
	if err := c.Do(ctx, http.MethodPut, "/user/profile", update, &resp); err != nil {
		return session.User{}, err
	}
	return resp.User, nil
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	return c.Do(ctx, http.MethodPut, "/user/password", body, nil)
}

// userPayload accepts a bare user object or one wrapped as {"user": {...}}.
type userPayload struct {
	User session.User
}

func (p *userPayload) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		User *json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.User != nil {
		data = *wrapped.User
	}

	var probe struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.ID == nil {
		return fmt.Errorf("user id is missing")
	}
	return json.Unmarshal(data, &p.User)
}
