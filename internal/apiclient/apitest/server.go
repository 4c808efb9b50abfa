// Package apitest runs an in-memory stand-in for the planner REST API. It
// issues real HS256 tokens and answers 401 for anything it did not sign or
// has since revoked.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"daily-planner-go/internal/domain/admin"
	"daily-planner-go/internal/domain/expenses"
	"daily-planner-go/internal/domain/plans"
	"daily-planner-go/internal/domain/reminders"
	"daily-planner-go/internal/domain/session"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

const adminSubject = "admin"

type account struct {
	user      session.User
	password  string
	createdAt time.Time
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	secret    []byte
	nextID    int64
	accounts  map[int64]*account
	plans     map[int64][]plans.Plan
	expenses  map[int64][]expenses.Expense
	reminders map[int64][]reminders.Reminder
	adminPass string
	requests  map[string]int
}

// New starts the fake API. Routes live under /api, admin routes under /api/admin.
func New() *Server {
	s := &Server{
		secret:    []byte("apitest-secret"),
		accounts:  make(map[int64]*account),
		plans:     make(map[int64][]plans.Plan),
		expenses:  make(map[int64][]expenses.Expense),
		reminders: make(map[int64][]reminders.Reminder),
		adminPass: "admin123",
		requests:  make(map[string]int),
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// BaseURL is the value for API_BASE_URL.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// AdminBaseURL is the value for ADMIN_API_BASE_URL.
func (s *Server) AdminBaseURL() string {
	return s.URL + "/api/admin"
}

// AddUser seeds an account and returns its id.
func (s *Server) AddUser(username, phone, password string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, phone, password)
}

func (s *Server) addUserLocked(username, phone, password string) int64 {
	s.nextID++
	name := username
	s.accounts[s.nextID] = &account{
		user:      session.User{ID: s.nextID, Username: &name, PhoneNumber: phone},
		password:  password,
		createdAt: time.Now().UTC(),
	}
	return s.nextID
}

// RevokeAll makes every issued token answer 401 from now on.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secret = append(s.secret, 'x')
}

// Requests counts handled requests per "METHOD /path" pattern.
func (s *Server) Requests(pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[pattern]
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.count)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.login)
		r.Post("/auth/register", s.register)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Get("/auth/verify", s.verify)
			r.Get("/user/profile", s.getProfile)
			r.Put("/user/profile", s.updateProfile)
			r.Put("/user/password", s.changePassword)

			r.Get("/plans", s.listPlans)
			r.Post("/plans", s.createPlan)
			r.Put("/plans/{id}", s.updatePlan)
			r.Delete("/plans/{id}", s.deletePlan)

			r.Get("/expenses", s.listExpenses)
			r.Post("/expenses", s.createExpense)
			r.Put("/expenses/{id}", s.updateExpense)
			r.Delete("/expenses/{id}", s.deleteExpense)

			r.Get("/reminders", s.listReminders)
			r.Post("/reminders", s.createReminder)
			r.Put("/reminders/{id}", s.updateReminder)
			r.Delete("/reminders/{id}", s.deleteReminder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", s.adminLogin)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)

				r.Get("/users", s.adminListUsers)
				r.Post("/users", s.adminCreateUser)
				r.Put("/users/{id}/password", s.adminResetPassword)
			})
		})
	})
	return r
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.Method+" "+r.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) issue(subject string) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	s.mu.Lock()
	secret := s.secret
	s.mu.Unlock()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}
	return token
}

func (s *Server) subject(r *http.Request) (string, bool) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return "", false
	}

	s.mu.Lock()
	secret := s.secret
	s.mu.Unlock()

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := s.subject(r)
		if !ok || subject == adminSubject {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		id, err := strconv.ParseInt(subject, 10, 64)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		s.mu.Lock()
		_, exists := s.accounts[id]
		s.mu.Unlock()
		if !exists {
			writeError(w, http.StatusUnauthorized, "user not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), id)))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := s.subject(r)
		if !ok || subject != adminSubject {
			writeError(w, http.StatusUnauthorized, "admin token required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decode(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (s *Server) userRow(a *account) admin.UserRow {
	row := admin.UserRow{
		ID:          a.user.ID,
		PhoneNumber: a.user.PhoneNumber,
		CreatedAt:   a.createdAt.Format(time.RFC3339),
	}
	if a.user.Username != nil {
		row.Username = *a.user.Username
	}
	if a.user.Nickname != nil {
		row.Nickname = *a.user.Nickname
	}
	if a.user.Avatar != nil {
		row.Avatar = *a.user.Avatar
	}
	return row
}
