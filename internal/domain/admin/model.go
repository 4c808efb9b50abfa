package admin

// Identity is the admin profile persisted next to the admin token.
type Identity struct {
	Username string `json:"username"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	Admin Identity `json:"admin"`
}

// UserRow is one account as listed by the admin API. Sensitive fields are never returned.
type UserRow struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
	Nickname    string `json:"nickname"`
	Avatar      string `json:"avatar"`
	CreatedAt   string `json:"created_at"`
}

type UserList struct {
	Users []UserRow `json:"users"`
	Total int       `json:"total"`
}

type CreateUserInput struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type CreateUserResponse struct {
	User UserRow `json:"user"`
}

type Snapshot struct {
	LoggedIn  bool      `json:"logged_in"`
	Admin     *Identity `json:"admin,omitempty"`
	Users     []UserRow `json:"users"`
	IsLoading bool      `json:"is_loading"`
	Error     string    `json:"error,omitempty"`
}
