package expenses

import (
	"net/http"

	expensesdomain "daily-planner-go/internal/domain/expenses"
	"daily-planner-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Expenses *expensesdomain.ViewModel
	log      logger.Logger
}

func New(expenses *expensesdomain.ViewModel, log logger.Logger) *Handlers {
	return &Handlers{
		Expenses: expenses,
		log:      log,
	}
}

type createExpenseRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Note     *string         `json:"note"`
}

type updateExpenseRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	Category *string          `json:"category"`
	Note     *string          `json:"note"`
}

// ListExpenses applies the year/month filter from the query and returns the
// filtered snapshot. The collection is reloaded unless refresh=false.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	if !h.applyFilter(w, r) {
		return
	}

	query := r.URL.Query()
	refresh, err := parseBoolParam(query.Get("refresh"), true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid refresh")
		return
	}
	if refresh {
		if err := h.Expenses.Load(r.Context()); err != nil {
			writeDomainError(w, h.log, "expenses.list", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, h.Expenses.Snapshot())
}

func (h *Handlers) applyFilter(w http.ResponseWriter, r *http.Request) bool {
	query := r.URL.Query()
	year, err := parseOptionalInt(query.Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid year")
		return false
	}
	month, err := parseOptionalInt(query.Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return false
	}

	if year == nil && month == nil {
		h.Expenses.ClearFilter()
		return true
	}
	if err := h.Expenses.SetFilter(year, month); err != nil {
		writeDomainError(w, h.log, "expenses.filter", err)
		return false
	}
	return true
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	input := expensesdomain.CreateInput{
		Amount:   req.Amount,
		Category: req.Category,
		Note:     req.Note,
	}
	expense, err := h.Expenses.Create(r.Context(), input)
	if err != nil {
		writeDomainError(w, h.log, "expenses.create", err, "category", req.Category)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req updateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if req.Amount == nil && req.Category == nil && req.Note == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "nothing to update")
		return
	}

	input := expensesdomain.UpdateInput{
		Amount:   req.Amount,
		Category: req.Category,
		Note:     req.Note,
	}
	if err := h.Expenses.Update(r.Context(), id, input); err != nil {
		writeDomainError(w, h.log, "expenses.update", err, "expense_id", id)
		return
	}
	writeJSON(w, http.StatusOK, h.Expenses.Snapshot())
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Expenses.Delete(r.Context(), id); err != nil {
		writeDomainError(w, h.log, "expenses.delete", err, "expense_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
