package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"daily-planner-go/internal/domain/session"
)

// SessionReader is the part of the session manager the guard needs.
type SessionReader interface {
	User() (session.User, bool)
}

type contextKey int

const userKey contextKey = iota

// RequireSession rejects requests while no user is logged in and stores the
// current user in the request context otherwise.
func RequireSession(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := sessions.User()
			if !ok {
				writeError(w, http.StatusUnauthorized, "not_logged_in", "not logged in")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// AdminReader reports whether an admin token is held.
type AdminReader interface {
	IsLoggedIn(ctx context.Context) bool
}

func RequireAdmin(console AdminReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !console.IsLoggedIn(r.Context()) {
				writeError(w, http.StatusUnauthorized, "not_logged_in", "admin not logged in")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithUser(ctx context.Context, user session.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (session.User, bool) {
	user, ok := ctx.Value(userKey).(session.User)
	if !ok || user.ID == 0 {
		return session.User{}, false
	}
	return user, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
