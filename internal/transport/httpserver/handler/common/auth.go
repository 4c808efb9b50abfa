package common

import (
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

type profileRequest struct {
	Nickname *string `json:"nickname"`
	Avatar   *string `json:"avatar"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Snapshot(r.Context()))
}

// CheckSession re-verifies the stored token against the API.
func (h *Handlers) CheckSession(w http.ResponseWriter, r *http.Request) {
	state := h.Session.CheckAuth(r.Context())
	h.log.Debug("session.check: done", "state", state)
	writeJSON(w, http.StatusOK, h.Session.Snapshot(r.Context()))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	if err := h.Session.Login(r.Context(), req.Account, req.Password); err != nil {
		WriteDomainError(w, h.log, "session.login", err, "account", req.Account)
		return
	}
	writeJSON(w, http.StatusOK, h.Session.Snapshot(r.Context()))
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	input := session.RegisterInput{
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	}
	if err := h.Session.Register(r.Context(), input); err != nil {
		WriteDomainError(w, h.log, "session.register", err, "username", req.Username)
		return
	}
	writeJSON(w, http.StatusCreated, h.Session.Snapshot(r.Context()))
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Session.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if req.Nickname == nil && req.Avatar == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "nothing to update")
		return
	}

	update := session.ProfileUpdate{Nickname: req.Nickname, Avatar: req.Avatar}
	if err := h.Session.UpdateProfile(r.Context(), update); err != nil {
		WriteDomainError(w, h.log, "session.update_profile", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Session.Snapshot(r.Context()))
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	if err := h.Session.ChangePassword(r.Context(), req.OldPassword, req.NewPassword); err != nil {
		WriteDomainError(w, h.log, "session.change_password", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
