package plans

import (
	"net/http"

	plansdomain "daily-planner-go/internal/domain/plans"
	"daily-planner-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Plans *plansdomain.ViewModel
	log   logger.Logger
}

func New(plans *plansdomain.ViewModel, log logger.Logger) *Handlers {
	return &Handlers{
		Plans: plans,
		log:   log,
	}
}

type createPlanRequest struct {
	Content       string `json:"content"`
	ExecutionDate string `json:"execution_date"`
}

type updatePlanRequest struct {
	Content *string             `json:"content"`
	Status  *plansdomain.Status `json:"status"`
}

// ListPlans reloads the plans of the requested day, or of the selected day
// when no date is given.
func (h *Handlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	if date != nil {
		err = h.Plans.SetDate(r.Context(), *date)
	} else {
		err = h.Plans.Load(r.Context())
	}
	if err != nil {
		writeDomainError(w, h.log, "plans.list", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Plans.Snapshot())
}

func (h *Handlers) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	date, err := parseDateParam(req.ExecutionDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid execution_date")
		return
	}
	if date != nil && *date != h.Plans.SelectedDate() {
		if err := h.Plans.SetDate(r.Context(), *date); err != nil {
			writeDomainError(w, h.log, "plans.create", err, "date", date.String())
			return
		}
	}

	plan, err := h.Plans.Create(r.Context(), req.Content)
	if err != nil {
		writeDomainError(w, h.log, "plans.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (h *Handlers) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req updatePlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if req.Content == nil && req.Status == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "nothing to update")
		return
	}

	input := plansdomain.UpdateInput{Content: req.Content, Status: req.Status}
	if err := h.Plans.Update(r.Context(), id, input); err != nil {
		writeDomainError(w, h.log, "plans.update", err, "plan_id", id)
		return
	}
	writeJSON(w, http.StatusOK, h.Plans.Snapshot())
}

func (h *Handlers) TogglePlan(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Plans.Toggle(r.Context(), id); err != nil {
		writeDomainError(w, h.log, "plans.toggle", err, "plan_id", id)
		return
	}
	writeJSON(w, http.StatusOK, h.Plans.Snapshot())
}

func (h *Handlers) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Plans.Delete(r.Context(), id); err != nil {
		writeDomainError(w, h.log, "plans.delete", err, "plan_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
