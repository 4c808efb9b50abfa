package apitest

import (
	"context"
	"net/http"
	"strconv"
)

type userIDKey struct{}

func withUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey{}).(int64)
	return id
}

type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    interface{} `json:"user"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Account  string `json:"account"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	var found *account
	for _, a := range s.accounts {
		matches := a.user.PhoneNumber == req.Account || (a.user.Username != nil && *a.user.Username == req.Account)
		if matches && a.password == req.Password {
			found = a
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		writeError(w, http.StatusUnauthorized, "invalid account or password")
		return
	}
	token := s.issue(strconv.FormatInt(found.user.ID, 10))
	writeJSON(w, http.StatusOK, authResponse{Message: "login successful", Token: token, User: found.user})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	for _, a := range s.accounts {
		if a.user.PhoneNumber == req.PhoneNumber || (a.user.Username != nil && *a.user.Username == req.Username) {
			s.mu.Unlock()
			writeError(w, http.StatusConflict, "username or phone number already registered")
			return
		}
	}
	id := s.addUserLocked(req.Username, req.PhoneNumber, req.Password)
	user := s.accounts[id].user
	s.mu.Unlock()

	token := s.issue(strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusCreated, authResponse{Message: "registered", Token: token, User: user})
}

func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user := s.accounts[userID(r)].user
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"valid": true, "user": user})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user := s.accounts[userID(r)].user
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname *string `json:"nickname"`
		Avatar   *string `json:"avatar"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	a := s.accounts[userID(r)]
	if req.Nickname != nil {
		a.user.Nickname = req.Nickname
	}
	if req.Avatar != nil {
		a.user.Avatar = req.Avatar
	}
	user := a.user
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.accounts[userID(r)]
	if a.password != req.OldPassword {
		writeError(w, http.StatusBadRequest, "old password is incorrect")
		return
	}
	a.password = req.NewPassword
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Username != "admin" || req.Password != s.adminPass {
		writeError(w, http.StatusUnauthorized, "invalid admin credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": s.issue(adminSubject),
		"admin": map[string]string{"username": req.Username},
	})
}
