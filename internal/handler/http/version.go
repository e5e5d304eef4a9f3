package http

import (
	"net/http"

	"github.com/MKhiriev/go-tube-accounts/internal/app"
	"github.com/MKhiriev/go-tube-accounts/models"
)

// getServerVersion answers in plain text so that shell scripts can read the
// version without a JSON parser.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(serverVersion)); err != nil {
		h.logger.Err(err).Str("func", "Handler.getServerVersion").Msg("error writing version")
	}
}

// ping is the readiness probe: 200 while the credential store answers,
// 503 otherwise.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AppInfoService.Ping(r.Context()); err != nil {
		writeJSON(r, w, models.NewErrorResponse(http.StatusServiceUnavailable, app.MsgServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	writeResponse(r, w, http.StatusOK, nil, app.MsgServiceReady)
}
