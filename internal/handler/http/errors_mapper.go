package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tube-accounts/internal/app"
	"github.com/MKhiriev/go-tube-accounts/internal/service"
)

// errorStatusMap maps service error kinds to HTTP statuses.
var errorStatusMap = map[error]int{
	service.ErrValidation:   http.StatusBadRequest,
	service.ErrConflict:     http.StatusConflict,
	service.ErrUnauthorized: http.StatusUnauthorized,
	service.ErrNotFound:     http.StatusNotFound,
	service.ErrInternal:     http.StatusInternalServerError,
}

// statusAndMessage translates err into what the caller is allowed to see.
// Anything that is neither a transport error nor a service error of a known
// kind becomes a bare 500.
func statusAndMessage(err error) (int, string) {
	var transportErr *requestError
	if errors.As(err, &transportErr) {
		return transportErr.status, transportErr.message
	}

	var serviceErr *service.Error
	if errors.As(err, &serviceErr) {
		if status, ok := errorStatusMap[serviceErr.Kind]; ok {
			return status, serviceErr.Message
		}
	}

	return http.StatusInternalServerError, app.MsgInternalServerError
}
