package apitest

import (
	"net/http"
	"time"

	"daily-planner-go/internal/domain/admin"
	"daily-planner-go/internal/domain/expenses"
	"daily-planner-go/internal/domain/plans"
	"daily-planner-go/internal/domain/reminders"
	"github.com/shopspring/decimal"
)

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	s.mu.Lock()
	result := make([]plans.Plan, 0)
	for _, p := range s.plans[userID(r)] {
		if date == "" || p.ExecutionDate.String() == date {
			result = append(result, p)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) createPlan(w http.ResponseWriter, r *http.Request) {
	var req plans.CreateInput
	if err := decode(r, &req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, "content and execution_date are required")
		return
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	plan := plans.Plan{ID: &id, Content: req.Content, ExecutionDate: req.ExecutionDate, Status: plans.StatusPending}
	uid := userID(r)
	s.plans[uid] = append(s.plans[uid], plan)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) updatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Content *string       `json:"content"`
		Status  *plans.Status `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.plans[userID(r)]
	for i := range items {
		if items[i].ID != nil && *items[i].ID == id {
			if req.Content != nil {
				items[i].Content = *req.Content
			}
			if req.Status != nil {
				items[i].Status = *req.Status
			}
			writeJSON(w, http.StatusOK, items[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "plan not found")
}

func (s *Server) deletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	uid := userID(r)
	items := s.plans[uid]
	for i := range items {
		if items[i].ID != nil && *items[i].ID == id {
			s.plans[uid] = append(items[:i:i], items[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "plan not found")
}

type expenseRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	Category *string          `json:"category"`
	Note     *string          `json:"note"`
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := append([]expenses.Expense{}, s.expenses[userID(r)]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"total": len(items), "expenses": items})
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decode(r, &req); err != nil || req.Amount == nil || req.Category == nil {
		writeError(w, http.StatusBadRequest, "amount and category are required")
		return
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	expense := expenses.Expense{
		ID:        &id,
		Amount:    *req.Amount,
		Category:  *req.Category,
		Note:      req.Note,
		CreatedAt: time.Now().UTC(),
	}
	uid := userID(r)
	s.expenses[uid] = append(s.expenses[uid], expense)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req expenseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.expenses[userID(r)]
	for i := range items {
		if items[i].ID != nil && *items[i].ID == id {
			if req.Amount != nil {
				items[i].Amount = *req.Amount
			}
			if req.Category != nil {
				items[i].Category = *req.Category
			}
			if req.Note != nil {
				items[i].Note = req.Note
			}
			writeJSON(w, http.StatusOK, items[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "expense not found")
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	uid := userID(r)
	items := s.expenses[uid]
	for i := range items {
		if items[i].ID != nil && *items[i].ID == id {
			s.expenses[uid] = append(items[:i:i], items[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "expense not found")
}

func (s *Server) listReminders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := append([]reminders.Reminder{}, s.reminders[userID(r)]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) createReminder(w http.ResponseWriter, r *http.Request) {
	var req reminders.CreateInput
	if err := decode(r, &req); err != nil || req.ReminderType == "" || req.ScheduledTime == "" {
		writeError(w, http.StatusBadRequest, "reminder_type and scheduled_time are required")
		return
	}

	s.mu.Lock()
	s.nextID++
	reminder := reminders.Reminder{
		ID:            s.nextID,
		ReminderType:  req.ReminderType,
		ScheduledTime: req.ScheduledTime,
		Content:       req.Content,
		IsEnabled:     true,
	}
	uid := userID(r)
	s.reminders[uid] = append(s.reminders[uid], reminder)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, reminder)
}

func (s *Server) updateReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req reminders.UpdateInput
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.reminders[userID(r)]
	for i := range items {
		if items[i].ID == id {
			if req.ScheduledTime != nil {
				items[i].ScheduledTime = *req.ScheduledTime
			}
			if req.Content != nil {
				items[i].Content = *req.Content
			}
			if req.IsEnabled != nil {
				items[i].IsEnabled = *req.IsEnabled
			}
			writeJSON(w, http.StatusOK, items[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "reminder not found")
}

func (s *Server) deleteReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	uid := userID(r)
	items := s.reminders[uid]
	for i := range items {
		if items[i].ID == id {
			s.reminders[uid] = append(items[:i:i], items[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "reminder not found")
}

func (s *Server) adminListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rows := make([]admin.UserRow, 0, len(s.accounts))
	for id := int64(1); id <= s.nextID; id++ {
		if a, ok := s.accounts[id]; ok {
			rows = append(rows, s.userRow(a))
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, admin.UserList{Users: rows, Total: len(rows)})
}

func (s *Server) adminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req admin.CreateUserInput
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	id := s.addUserLocked(req.Username, req.PhoneNumber, req.Password)
	row := s.userRow(s.accounts[id])
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, admin.CreateUserResponse{User: row})
}

func (s *Server) adminResetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		NewPassword string `json:"new_password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, exists := s.accounts[id]
	if !exists {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	a.password = req.NewPassword
	writeJSON(w, http.StatusOK, map[string]string{"message": "password reset"})
}
