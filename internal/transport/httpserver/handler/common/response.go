package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/internal/domain/session"
	"daily-planner-go/pkg/logger"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeError(w, status, code, message)
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSON(w, status, payload)
}

func DecodeJSON(r *http.Request, dst interface{}) error {
	return decodeJSON(r, dst)
}

// ErrorStatus maps a view-model error to the gateway status and error code.
func ErrorStatus(err error) (int, string) {
	var server *apierr.ServerError
	var network *apierr.NetworkError
	var decoding *apierr.DecodingError

	switch {
	case errors.Is(err, apierr.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, apierr.ErrUnauthorized):
		return http.StatusUnauthorized, "session_expired"
	case errors.Is(err, session.ErrNotLoggedIn):
		return http.StatusUnauthorized, "not_logged_in"
	case errors.As(err, &server):
		if server.Status >= 400 && server.Status < 500 {
			return server.Status, "upstream_rejected"
		}
		return http.StatusBadGateway, "upstream_error"
	case errors.As(err, &decoding):
		return http.StatusBadGateway, "upstream_invalid_response"
	case errors.As(err, &network):
		return http.StatusServiceUnavailable, "upstream_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// WriteDomainError logs err under op and writes the mapped error envelope.
func WriteDomainError(w http.ResponseWriter, log logger.Logger, op string, err error, args ...any) {
	status, code := ErrorStatus(err)
	if status < http.StatusInternalServerError {
		log.BusinessError(op+": rejected", err, args...)
	} else {
		log.InternalError(op+": failed", err, args...)
	}

	message := apierr.Message(err)
	if code == "internal_error" {
		message = "internal error"
	}
	writeError(w, status, code, message)
}
