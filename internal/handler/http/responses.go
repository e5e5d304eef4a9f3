package http

import (
	"net/http"

	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/utils"
	"github.com/MKhiriev/go-tube-accounts/models"
)

func writeResponse(r *http.Request, w http.ResponseWriter, status int, data any, message string) {
	writeJSON(r, w, models.NewResponse(status, data, message), status)
}

// writeError renders err in the failure envelope; see statusAndMessage.
func writeError(r *http.Request, w http.ResponseWriter, err error) {
	log := logger.FromRequest(r)
	status, message := statusAndMessage(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	writeJSON(r, w, models.NewErrorResponse(status, message), status)
}

func writeJSON(r *http.Request, w http.ResponseWriter, body any, status int) {
	if _, err := utils.WriteJSON(w, body, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
