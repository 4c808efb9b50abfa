package admin

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/internal/domain/prefs"
	"daily-planner-go/internal/domain/viewstate"
	"daily-planner-go/pkg/logger"
)

const KeyIdentity = "admin_info"

var errMissingToken = errors.New("admin login response has no token")

type API interface {
	AdminLogin(ctx context.Context, username, password string) (LoginResponse, error)
	AdminListUsers(ctx context.Context) ([]UserRow, error)
	AdminCreateUser(ctx context.Context, input CreateUserInput) (UserRow, error)
	AdminResetPassword(ctx context.Context, userID int64, newPassword string) error
	OnUnauthorized(fn func())
}

type Tokens interface {
	Get(ctx context.Context) string
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Console is the admin session plus the user list it manages. The admin
// token and identity live apart from the app session.
type Console struct {
	api    API
	tokens Tokens
	store  prefs.Store
	log    logger.Logger
	users  *viewstate.Collection[UserRow]

	mu       sync.RWMutex
	identity *Identity
}

func NewConsole(api API, tokens Tokens, store prefs.Store, log logger.Logger) *Console {
	c := &Console{
		api:    api,
		tokens: tokens,
		store:  store,
		log:    log,
		users:  viewstate.NewCollection[UserRow](false),
	}
	api.OnUnauthorized(c.expire)
	return c
}

// Restore picks up a previous admin login from storage.
func (c *Console) Restore(ctx context.Context) bool {
	if c.tokens.Get(ctx) == "" {
		return false
	}

	raw, err := prefs.GetString(ctx, c.store, KeyIdentity)
	if err != nil {
		c.log.InternalError("admin.restore: read identity failed", err)
		return false
	}

	var identity *Identity
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &identity); err != nil {
			c.log.BusinessError("admin.restore: identity unreadable", err)
			identity = nil
		}
	}

	c.mu.Lock()
	c.identity = identity
	c.mu.Unlock()
	return true
}

func (c *Console) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		err := apierr.Invalid("username", "enter the admin username and password")
		c.users.Fail(err)
		return err
	}

	resp, err := c.api.AdminLogin(ctx, username, password)
	if err != nil {
		c.log.BusinessError("admin.login: failed", err)
		c.users.Fail(err)
		return err
	}
	if resp.Token == "" {
		err := &apierr.DecodingError{Target: "admin login response", Cause: errMissingToken}
		c.log.InternalError("admin.login: empty token", err, "username", username)
		c.users.Fail(err)
		return err
	}

	if err := c.tokens.Set(ctx, resp.Token); err != nil {
		c.log.InternalError("admin.login: persist token failed", err)
	}
	identity := resp.Admin
	if payload, err := json.Marshal(identity); err == nil {
		if err := c.store.Set(ctx, KeyIdentity, string(payload)); err != nil {
			c.log.InternalError("admin.login: persist identity failed", err)
		}
	}

	c.mu.Lock()
	c.identity = &identity
	c.mu.Unlock()
	c.users.ClearError()

	c.log.Info("admin.login: logged in", "username", identity.Username)
	return nil
}

func (c *Console) Logout(ctx context.Context) {
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.InternalError("admin.logout: clear token failed", err)
	}
	c.forget(ctx)
}

// expire runs after a 401; the client already dropped the token.
func (c *Console) expire() {
	c.forget(context.Background())
	c.users.Fail(apierr.ErrUnauthorized)
}

func (c *Console) forget(ctx context.Context) {
	if err := c.store.Delete(ctx, KeyIdentity); err != nil {
		c.log.InternalError("admin.logout: clear identity failed", err)
	}

	c.mu.Lock()
	c.identity = nil
	c.mu.Unlock()
	c.users.Reset()
}

func (c *Console) IsLoggedIn(ctx context.Context) bool {
	return c.tokens.Get(ctx) != ""
}

func (c *Console) LoadUsers(ctx context.Context) error {
	ticket := c.users.BeginLoad()

	users, err := c.api.AdminListUsers(ctx)
	if err != nil {
		c.log.BusinessError("admin.users: list failed", err)
	}
	c.users.FinishLoad(ticket, users, err)
	return err
}

func (c *Console) CreateUser(ctx context.Context, input CreateUserInput) (UserRow, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	if err := validateCreateUser(input); err != nil {
		c.users.Fail(err)
		return UserRow{}, err
	}

	user, err := c.api.AdminCreateUser(ctx, input)
	if err != nil {
		c.log.BusinessError("admin.users: create failed", err)
		c.users.Fail(err)
		return UserRow{}, err
	}

	c.users.Prepend(user)
	return user, nil
}

func (c *Console) ResetPassword(ctx context.Context, userID int64, newPassword string) error {
	if utf8.RuneCountInString(newPassword) < 6 {
		err := apierr.Invalid("new_password", "password must be at least 6 characters")
		c.users.Fail(err)
		return err
	}

	if err := c.api.AdminResetPassword(ctx, userID, newPassword); err != nil {
		c.log.BusinessError("admin.users: reset password failed", err, "user_id", userID)
		c.users.Fail(err)
		return err
	}
	c.users.ClearError()
	return nil
}

func (c *Console) Users() []UserRow {
	return c.users.Items()
}

func (c *Console) Snapshot(ctx context.Context) Snapshot {
	state := c.users.State()

	c.mu.RLock()
	var identity *Identity
	if c.identity != nil {
		copied := *c.identity
		identity = &copied
	}
	c.mu.RUnlock()

	return Snapshot{
		LoggedIn:  c.IsLoggedIn(ctx),
		Admin:     identity,
		Users:     state.Items,
		IsLoading: state.IsLoading,
		Error:     state.Error,
	}
}

func validateCreateUser(input CreateUserInput) error {
	switch n := utf8.RuneCountInString(input.Username); {
	case n < 3 || n > 50:
		return apierr.Invalid("username", "username must be 3 to 50 characters")
	case input.PhoneNumber == "":
		return apierr.Invalid("phone_number", "enter a phone number")
	case utf8.RuneCountInString(input.Password) < 6:
		return apierr.Invalid("password", "password must be at least 6 characters")
	}
	return nil
}
