package common

import (
	"net/http"

	"daily-planner-go/internal/domain/session"
	"daily-planner-go/pkg/logger"
)

type Handlers struct {
	Session *session.Manager
	log     logger.Logger
}

func New(sessions *session.Manager, log logger.Logger) *Handlers {
	return &Handlers{
		Session: sessions,
		log:     log,
	}
}

type healthResponse struct {
	Status  string        `json:"status"`
	Session session.State `json:"session"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Session: h.Session.State()})
}
