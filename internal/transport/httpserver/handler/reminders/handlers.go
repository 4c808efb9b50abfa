package reminders

import (
	"net/http"

	remindersdomain "daily-planner-go/internal/domain/reminders"
	"daily-planner-go/internal/transport/httpserver/middleware"
	"daily-planner-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Reminders *remindersdomain.ViewModel
	log       logger.Logger
}

func New(reminders *remindersdomain.ViewModel, log logger.Logger) *Handlers {
	return &Handlers{
		Reminders: reminders,
		log:       log,
	}
}

type createReminderRequest struct {
	ReminderType  remindersdomain.Type `json:"reminder_type"`
	ScheduledTime string               `json:"scheduled_time"`
	Content       string               `json:"content"`
}

type updateReminderRequest struct {
	ScheduledTime *string `json:"scheduled_time"`
	Content       *string `json:"content"`
	IsEnabled     *bool   `json:"is_enabled"`
}

func (h *Handlers) ListReminders(w http.ResponseWriter, r *http.Request) {
	if err := h.Reminders.Load(r.Context()); err != nil {
		writeDomainError(w, h.log, "reminders.list", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Reminders.Snapshot())
}

func (h *Handlers) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var req createReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	input := remindersdomain.CreateInput{
		ReminderType:  req.ReminderType,
		ScheduledTime: req.ScheduledTime,
		Content:       req.Content,
	}
	reminder, err := h.Reminders.Create(r.Context(), input)
	if err != nil {
		writeDomainError(w, h.log, "reminders.create", err, "type", req.ReminderType)
		return
	}
	writeJSON(w, http.StatusCreated, reminder)
}

func (h *Handlers) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req updateReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if req.ScheduledTime == nil && req.Content == nil && req.IsEnabled == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "nothing to update")
		return
	}

	input := remindersdomain.UpdateInput{
		ScheduledTime: req.ScheduledTime,
		Content:       req.Content,
		IsEnabled:     req.IsEnabled,
	}
	if err := h.Reminders.Update(r.Context(), id, input); err != nil {
		writeDomainError(w, h.log, "reminders.update", err, "reminder_id", id)
		return
	}
	writeJSON(w, http.StatusOK, h.Reminders.Snapshot())
}

func (h *Handlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Reminders.Delete(r.Context(), id); err != nil {
		writeDomainError(w, h.log, "reminders.delete", err, "reminder_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ScheduleReminders mirrors the loaded bedtime and plan reminders into the
// local notification scheduler.
func (h *Handlers) ScheduleReminders(w http.ResponseWriter, r *http.Request) {
	name := ""
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		name = user.DisplayName()
	}

	if err := h.Reminders.ScheduleLocal(r.Context(), name); err != nil {
		writeDomainError(w, h.log, "reminders.schedule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
