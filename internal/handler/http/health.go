package http

import (
	"net/http"

	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/internal/utils"
)

// healthz answers a liveness probe. It deliberately touches nothing below
// the transport layer: a healthy process answers even when storage is down.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if _, err := utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing healthz response")
	}
}
