package expenses

import (
	"net/http"

	expensesdomain "daily-planner-go/internal/domain/expenses"
)

type categoryResponse struct {
	Key    string    `json:"key"`
	Label  string    `json:"label"`
	Icon   string    `json:"icon"`
	Colors [2]string `json:"colors"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := expensesdomain.Categories()
	items := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, categoryResponse{
			Key:    category.Key,
			Label:  category.Label,
			Icon:   category.Icon,
			Colors: category.Colors,
		})
	}
	writeJSON(w, http.StatusOK, items)
}
