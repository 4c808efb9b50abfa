package water

import (
	"net/http"

	"daily-planner-go/internal/domain/session"
	waterdomain "daily-planner-go/internal/domain/water"
	"daily-planner-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Users resolves the greeting name for reminders. Water tracking itself works
// without a session.
type Users interface {
	User() (session.User, bool)
}

type Handlers struct {
	Water *waterdomain.ViewModel
	users Users
	log   logger.Logger
}

func New(water *waterdomain.ViewModel, users Users, log logger.Logger) *Handlers {
	return &Handlers{
		Water: water,
		users: users,
		log:   log,
	}
}

type addRecordRequest struct {
	Type   string `json:"type"`
	Amount *int   `json:"amount"`
}

type settingsRequest struct {
	DailyGoal       *int  `json:"daily_goal"`
	ReminderEnabled *bool `json:"reminder_enabled"`
	StartHour       *int  `json:"start_hour"`
	StartMinute     *int  `json:"start_minute"`
	IntervalMinutes *int  `json:"interval_minutes"`
}

func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	if err := h.Water.Load(r.Context()); err != nil {
		writeDomainError(w, h.log, "water.today", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Water.Snapshot(r.Context()))
}

func (h *Handlers) ListDrinks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, waterdomain.Drinks())
}

// AddRecord logs a drink. A missing amount falls back to the drink's default
// serving.
func (h *Handlers) AddRecord(w http.ResponseWriter, r *http.Request) {
	var req addRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	amount := 0
	if req.Amount != nil {
		amount = *req.Amount
	} else if drink, ok := waterdomain.DrinkByName(req.Type); ok {
		amount = drink.DefaultAmount
	}

	record, err := h.Water.Add(r.Context(), req.Type, amount)
	if err != nil {
		writeDomainError(w, h.log, "water.add", err, "type", req.Type)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *Handlers) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Water.Delete(r.Context(), id); err != nil {
		writeDomainError(w, h.log, "water.delete", err, "record_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	if err := h.Water.Load(r.Context()); err != nil {
		writeDomainError(w, h.log, "water.settings", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Water.Settings())
}

// UpdateSettings merges the given fields into the current settings and
// reschedules reminders.
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.Water.Load(r.Context()); err != nil {
		writeDomainError(w, h.log, "water.settings", err)
		return
	}

	settings := h.Water.Settings()
	if req.DailyGoal != nil {
		settings.DailyGoal = *req.DailyGoal
	}
	if req.ReminderEnabled != nil {
		settings.ReminderEnabled = *req.ReminderEnabled
	}
	if req.StartHour != nil {
		settings.StartHour = *req.StartHour
	}
	if req.StartMinute != nil {
		settings.StartMinute = *req.StartMinute
	}
	if req.IntervalMinutes != nil {
		settings.IntervalMinutes = *req.IntervalMinutes
	}

	saved, err := h.Water.UpdateSettings(r.Context(), settings)
	if err != nil {
		writeDomainError(w, h.log, "water.settings", err)
		return
	}
	if err := h.Water.ScheduleReminders(r.Context(), h.userName()); err != nil {
		writeDomainError(w, h.log, "water.settings", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handlers) ScheduleReminders(w http.ResponseWriter, r *http.Request) {
	if err := h.Water.Load(r.Context()); err != nil {
		writeDomainError(w, h.log, "water.schedule", err)
		return
	}
	if err := h.Water.ScheduleReminders(r.Context(), h.userName()); err != nil {
		writeDomainError(w, h.log, "water.schedule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) userName() string {
	if h.users == nil {
		return ""
	}
	user, ok := h.users.User()
	if !ok {
		return ""
	}
	return user.DisplayName()
}
