package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// statusRateLimited is the non-standard status Cloudinary answers with when
// the account exceeds its hourly quota.
const statusRateLimited = 420

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	statusRateLimited:              ErrRateLimited,
	http.StatusTooManyRequests:     ErrRateLimited,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
}

// storeError is the error body of a Cloudinary-compatible API.
type storeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// mapHTTPError returns nil for 2xx answers and otherwise wraps the sentinel
// of the status with the message of the store.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	message := errorMessage(resp.Body())
	if sentinel, ok := statusErrors[status]; ok {
		return fmt.Errorf("%w: %s", sentinel, message)
	}

	if message == "" {
		message = http.StatusText(status)
	}
	return fmt.Errorf("http %d: %s", status, message)
}

// errorMessage prefers the structured message of the store over the raw body.
func errorMessage(raw []byte) string {
	var se storeError
	if err := json.Unmarshal(raw, &se); err == nil && se.Error.Message != "" {
		return se.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
