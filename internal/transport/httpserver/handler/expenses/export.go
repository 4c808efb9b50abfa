package expenses

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	expensesdomain "daily-planner-go/internal/domain/expenses"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportExpenses writes the filtered expenses as an XLSX workbook. The query
// accepts the same year/month filter as ListExpenses and never reloads.
func (h *Handlers) ExportExpenses(w http.ResponseWriter, r *http.Request) {
	if !h.applyFilter(w, r) {
		return
	}

	items := h.Expenses.Filtered()
	var buf bytes.Buffer
	if err := expensesdomain.Export(&buf, items, h.Expenses.Location()); err != nil {
		h.log.InternalError("expenses.export: write workbook failed", err, "count", len(items))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	filename := fmt.Sprintf("expenses-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
