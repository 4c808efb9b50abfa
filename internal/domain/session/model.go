package session

import "time"

type State string

const (
	StateCheckingAuth State = "checking_auth"
	StateLoggedIn     State = "logged_in"
	StateLoggedOut    State = "logged_out"
)

type User struct {
	ID          int64   `json:"id"`
	Username    *string `json:"username,omitempty"`
	PhoneNumber string  `json:"phone_number"`
	Nickname    *string `json:"nickname,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// DisplayName prefers the nickname, then the username, then the phone number.
func (u User) DisplayName() string {
	if u.Nickname != nil && *u.Nickname != "" {
		return *u.Nickname
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.PhoneNumber
}

func (u User) HasProfile() bool {
	return (u.Nickname != nil && *u.Nickname != "") || (u.Avatar != nil && *u.Avatar != "")
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type VerifyResponse struct {
	Valid bool  `json:"valid"`
	User  *User `json:"user,omitempty"`
}

type RegisterInput struct {
	Username    string
	PhoneNumber string
	Password    string
}

type ProfileUpdate struct {
	Nickname *string `json:"nickname,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

type Snapshot struct {
	State          State      `json:"state"`
	User           *User      `json:"user,omitempty"`
	DisplayName    string     `json:"display_name,omitempty"`
	IsLoading      bool       `json:"is_loading"`
	Error          string     `json:"error,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
}
