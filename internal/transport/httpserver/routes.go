package httpserver

import (
	"net/http"
	"time"

	"daily-planner-go/internal/config"
	"daily-planner-go/internal/transport/httpserver/handler"
	authmw "daily-planner-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		r.Get("/session", handlers.Common.GetSession)
		r.Post("/session/check", handlers.Common.CheckSession)
		r.Post("/session/login", handlers.Common.Login)
		r.Post("/session/register", handlers.Common.Register)
		r.Post("/session/logout", handlers.Common.Logout)

		r.Get("/water", handlers.Water.GetToday)
		r.Post("/water", handlers.Water.AddRecord)
		r.Delete("/water/{id}", handlers.Water.DeleteRecord)
		r.Get("/water/drinks", handlers.Water.ListDrinks)
		r.Get("/water/settings", handlers.Water.GetSettings)
		r.Put("/water/settings", handlers.Water.UpdateSettings)
		r.Post("/water/reminders", handlers.Water.ScheduleReminders)

		r.Get("/expenses/categories", handlers.Expenses.ListCategories)

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireSession(handlers.Common.Session))

			r.Put("/session/profile", handlers.Common.UpdateProfile)
			r.Put("/session/password", handlers.Common.ChangePassword)

			r.Get("/plans", handlers.Plans.ListPlans)
			r.Post("/plans", handlers.Plans.CreatePlan)
			r.Put("/plans/{id}", handlers.Plans.UpdatePlan)
			r.Post("/plans/{id}/toggle", handlers.Plans.TogglePlan)
			r.Delete("/plans/{id}", handlers.Plans.DeletePlan)

			r.Get("/expenses", handlers.Expenses.ListExpenses)
			r.Get("/expenses/export", handlers.Expenses.ExportExpenses)
			r.Post("/expenses", handlers.Expenses.CreateExpense)
			r.Put("/expenses/{id}", handlers.Expenses.UpdateExpense)
			r.Delete("/expenses/{id}", handlers.Expenses.DeleteExpense)

			r.Get("/reminders", handlers.Reminders.ListReminders)
			r.Post("/reminders", handlers.Reminders.CreateReminder)
			r.Put("/reminders/{id}", handlers.Reminders.UpdateReminder)
			r.Delete("/reminders/{id}", handlers.Reminders.DeleteReminder)
			r.Post("/reminders/schedule", handlers.Reminders.ScheduleReminders)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/session", handlers.Admin.GetSession)
			r.Post("/login", handlers.Admin.Login)
			r.Post("/logout", handlers.Admin.Logout)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireAdmin(handlers.Admin.Console))

				r.Get("/users", handlers.Admin.ListUsers)
				r.Post("/users", handlers.Admin.CreateUser)
				r.Put("/users/{id}/password", handlers.Admin.ResetPassword)
			})
		})
	})

	return r
}
