package models

// Response is the uniform success envelope written by every endpoint.
type Response struct {
	// Status mirrors the HTTP status code.
	Status int `json:"status"`

	// Data is the operation payload; an empty object when there is none.
	Data any `json:"data"`

	// Message is a short human readable summary.
	Message string `json:"message"`

	// OK is always true for this envelope.
	OK bool `json:"ok"`
}

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	OK      bool     `json:"ok"`
	Details []string `json:"details"`
}

// NewResponse builds a success envelope.
func NewResponse(status int, data any, message string) Response {
	if data == nil {
		data = struct{}{}
	}
	return Response{Status: status, Data: data, Message: message, OK: true}
}

// NewErrorResponse builds a failure envelope. Details is never nil so that it
// is always rendered as a JSON array.
func NewErrorResponse(status int, message string, details ...string) ErrorResponse {
	if details == nil {
		details = []string{}
	}
	return ErrorResponse{Status: status, Message: message, OK: false, Details: details}
}
