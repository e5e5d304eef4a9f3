package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidRegisterRequest = errors.New("invalid register request")
	ErrInvalidLoginRequest    = errors.New("invalid login request")
	ErrNoIdentifier           = errors.New("username or email is required")
)
