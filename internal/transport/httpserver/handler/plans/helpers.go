package plans

import (
	"net/http"

	plansdomain "daily-planner-go/internal/domain/plans"
	commonhandler "daily-planner-go/internal/transport/httpserver/handler/common"
	"daily-planner-go/pkg/logger"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func writeDomainError(w http.ResponseWriter, log logger.Logger, op string, err error, args ...any) {
	commonhandler.WriteDomainError(w, log, op, err, args...)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func parseDateParam(value string) (*plansdomain.Date, error) {
	return commonhandler.ParseDateParam(value)
}

func parseID(value string) (int64, error) {
	return commonhandler.ParseID(value)
}
