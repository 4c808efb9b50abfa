package admin

import (
	"net/http"

	admindomain "daily-planner-go/internal/domain/admin"
	"daily-planner-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Console *admindomain.Console
	log     logger.Logger
}

func New(console *admindomain.Console, log logger.Logger) *Handlers {
	return &Handlers{
		Console: console,
		log:     log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createUserRequest struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Console.Snapshot(r.Context()))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	if err := h.Console.Login(r.Context(), req.Username, req.Password); err != nil {
		writeDomainError(w, h.log, "admin.login", err, "username", req.Username)
		return
	}
	writeJSON(w, http.StatusOK, h.Console.Snapshot(r.Context()))
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Console.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	if err := h.Console.LoadUsers(r.Context()); err != nil {
		writeDomainError(w, h.log, "admin.list_users", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Console.Snapshot(r.Context()))
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	input := admindomain.CreateUserInput{
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	}
	user, err := h.Console.CreateUser(r.Context(), input)
	if err != nil {
		writeDomainError(w, h.log, "admin.create_user", err, "username", req.Username)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	if err := h.Console.ResetPassword(r.Context(), id, req.NewPassword); err != nil {
		writeDomainError(w, h.log, "admin.reset_password", err, "user_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
