package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// fallbackBody is written when the real body cannot be encoded. It matches
// the failure envelope of the HTTP API.
const fallbackBody = `{"status":500,"message":"internal server error","ok":false,"details":[]}`

// WriteJSON encodes data and writes it with statusCode. Responses may carry
// session tokens, so they are marked as not cacheable.
//
// If encoding fails nothing of data is written; the client gets a 500 with
// the generic failure envelope and the encoding error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	header := w.Header()
	header.Set("Content-Type", "application/json")
	header.Set("Cache-Control", "no-store")

	body, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallbackBody))
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.WriteHeader(statusCode)
	return w.Write(body)
}
