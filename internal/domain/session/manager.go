package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

// API is the part of the API client the session needs.
type API interface {
	Login(ctx context.Context, account, password string) (AuthResponse, error)
	Register(ctx context.Context, input RegisterInput) (AuthResponse, error)
	Verify(ctx context.Context) (VerifyResponse, error)
	GetProfile(ctx context.Context) (User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	OnUnauthorized(fn func())
}

type Tokens interface {
	Get(ctx context.Context) string
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Manager owns the authentication state and the current user.
type Manager struct {
	api    API
	tokens Tokens
	log    logger.Logger

	mu         sync.RWMutex
	state      State
	user       *User
	inFlight   int
	errMessage string

	hooksMu sync.RWMutex
	onEnd   []func()
}

func NewManager(api API, tokens Tokens, log logger.Logger) *Manager {
	m := &Manager{
		api:    api,
		tokens: tokens,
		log:    log,
		state:  StateCheckingAuth,
	}
	api.OnUnauthorized(m.expire)
	return m
}

// OnSessionEnd registers fn to run whenever the current user's session ends:
// on logout, when a 401 expires it, when a stored token is rejected, and just
// before a new sign-in takes over. Hooks run without any session lock held.
func (m *Manager) OnSessionEnd(fn func()) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()

	m.onEnd = append(m.onEnd, fn)
}

func (m *Manager) ended() {
	m.hooksMu.RLock()
	hooks := append([]func(){}, m.onEnd...)
	m.hooksMu.RUnlock()

	for _, hook := range hooks {
		hook()
	}
}

// expire runs after the API client saw a 401 and already cleared the token.
func (m *Manager) expire() {
	m.mu.Lock()
	if m.state == StateLoggedIn {
		m.errMessage = apierr.MessageUnauthorized
		m.log.Info("session.expire: logged out after 401")
	}
	m.state = StateLoggedOut
	m.user = nil
	m.mu.Unlock()

	m.ended()
}

// CheckAuth resolves the startup state from the stored token.
func (m *Manager) CheckAuth(ctx context.Context) State {
	if m.tokens.Get(ctx) == "" {
		m.setLoggedOut()
		return StateLoggedOut
	}

	m.begin(StateCheckingAuth)
	defer m.end()

	user, err := m.verify(ctx)
	if err != nil {
		m.log.BusinessError("session.check: token rejected", err)
		if clearErr := m.tokens.Clear(ctx); clearErr != nil {
			m.log.InternalError("session.check: clear token failed", clearErr)
		}
		m.setLoggedOut()
		m.ended()
		return StateLoggedOut
	}

	m.mu.Lock()
	m.state = StateLoggedIn
	m.user = &user
	m.mu.Unlock()
	return StateLoggedIn
}

func (m *Manager) verify(ctx context.Context) (User, error) {
	resp, err := m.api.Verify(ctx)
	if err != nil {
		return User{}, err
	}
	if !resp.Valid {
		return User{}, apierr.ErrUnauthorized
	}
	return m.api.GetProfile(ctx)
}

// Login authenticates with a username or phone number. On failure the state
// is unchanged and the message is kept for display.
func (m *Manager) Login(ctx context.Context, account, password string) error {
	if err := validateLogin(account, password); err != nil {
		m.fail(err)
		return err
	}

	m.begin("")
	defer m.end()

	resp, err := m.api.Login(ctx, strings.TrimSpace(account), password)
	if err != nil {
		m.log.BusinessError("session.login: failed", err)
		m.fail(err)
		return err
	}
	return m.signIn(ctx, resp)
}

func (m *Manager) Register(ctx context.Context, input RegisterInput) error {
	if err := validateRegister(input); err != nil {
		m.fail(err)
		return err
	}

	m.begin("")
	defer m.end()

	input.Username = strings.TrimSpace(input.Username)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	resp, err := m.api.Register(ctx, input)
	if err != nil {
		m.log.BusinessError("session.register: failed", err)
		m.fail(err)
		return err
	}
	return m.signIn(ctx, resp)
}

func (m *Manager) signIn(ctx context.Context, resp AuthResponse) error {
	if resp.Token == "" {
		err := &apierr.DecodingError{Target: "auth response", Cause: ErrNotLoggedIn}
		m.fail(err)
		return err
	}
	m.ended()
	if err := m.tokens.Set(ctx, resp.Token); err != nil {
		// The token is still held in memory for this process.
		m.log.InternalError("session.login: persist token failed", err)
	}

	user := resp.User
	m.mu.Lock()
	m.state = StateLoggedIn
	m.user = &user
	m.errMessage = ""
	m.mu.Unlock()

	m.log.Info("session.login: logged in", "user_id", user.ID)
	return nil
}

// Logout clears the token and the user without calling the API.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.tokens.Clear(ctx); err != nil {
		m.log.InternalError("session.logout: clear token failed", err)
	}
	m.setLoggedOut()
	m.ended()
}

// UpdateProfile replaces the current user with the server's copy on success.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	if !m.IsLoggedIn() {
		return ErrNotLoggedIn
	}

	m.begin("")
	defer m.end()

	user, err := m.api.UpdateProfile(ctx, update)
	if err != nil {
		m.log.BusinessError("session.update_profile: failed", err)
		m.fail(err)
		return err
	}

	m.mu.Lock()
	if m.state == StateLoggedIn {
		m.user = &user
	}
	m.errMessage = ""
	m.mu.Unlock()
	return nil
}

func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if !m.IsLoggedIn() {
		return ErrNotLoggedIn
	}
	if oldPassword == "" {
		err := apierr.Invalid("old_password", "enter the current password")
		m.fail(err)
		return err
	}
	if err := validatePassword("new_password", newPassword); err != nil {
		m.fail(err)
		return err
	}

	m.begin("")
	defer m.end()

	if err := m.api.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		m.log.BusinessError("session.change_password: failed", err)
		m.fail(err)
		return err
	}

	m.mu.Lock()
	m.errMessage = ""
	m.mu.Unlock()
	return nil
}

// TokenExpiresAt reads the exp claim of the stored token. The signature is
// not checked; the value is informational only.
func (m *Manager) TokenExpiresAt(ctx context.Context) *time.Time {
	return tokenExpiry(m.tokens.Get(ctx))
}

func tokenExpiry(token string) *time.Time {
	if token == "" {
		return nil
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	exp := claims.ExpiresAt.Time
	return &exp
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state
}

func (m *Manager) IsLoggedIn() bool {
	return m.State() == StateLoggedIn
}

func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.inFlight > 0
}

func (m *Manager) User() (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return User{}, false
	}
	return *m.user, true
}

func (m *Manager) Error() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.errMessage
}

func (m *Manager) Snapshot(ctx context.Context) Snapshot {
	expiresAt := m.TokenExpiresAt(ctx)

	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		State:     m.state,
		IsLoading: m.inFlight > 0,
		Error:     m.errMessage,
	}
	if m.user != nil {
		user := *m.user
		snap.User = &user
		snap.DisplayName = user.DisplayName()
		snap.TokenExpiresAt = expiresAt
	}
	return snap
}

func (m *Manager) begin(state State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inFlight++
	m.errMessage = ""
	if state != "" {
		m.state = state
	}
}

func (m *Manager) end() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inFlight > 0 {
		m.inFlight--
	}
}

func (m *Manager) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errMessage = apierr.Message(err)
}

func (m *Manager) setLoggedOut() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateLoggedOut
	m.user = nil
}
