package validators

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/MKhiriev/go-tube-accounts/models"
)

const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldAvatar   = "avatar"

	// FieldIdentifier is the "username or email" rule of a login request.
	FieldIdentifier = "identifier"
)

// RegisterTextFields are the form fields every registration must carry.
var RegisterTextFields = []string{FieldFullName, FieldEmail, FieldUsername, FieldPassword}

type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateRegisterRequest expects an already trimmed request.
func (v *UserValidator) validateRegisterRequest(r models.RegisterRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldFullName: validation.Field(&r.FullName, validation.Required),
		FieldEmail:    validation.Field(&r.Email, validation.Required),
		FieldUsername: validation.Field(&r.Username, validation.Required),
		FieldPassword: validation.Field(&r.Password, validation.Required),
		FieldAvatar:   validation.Field(&r.AvatarPath, validation.Required),
	}
	if len(fields) == 0 {
		fields = append(append([]string{}, RegisterTextFields...), FieldAvatar)
	}

	selected, err := selectRules(rules, fields)
	if err != nil {
		return err
	}

	if err = validation.ValidateStruct(&r, selected...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRegisterRequest, err)
	}
	return nil
}

func (v *UserValidator) validateLoginRequest(r models.LoginRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldIdentifier: validation.Field(&r.Username, validation.By(func(value any) error {
			if r.Username == "" && r.Email == "" {
				return ErrNoIdentifier
			}
			return nil
		})),
	}
	if len(fields) == 0 {
		fields = []string{FieldIdentifier}
	}

	selected, err := selectRules(rules, fields)
	if err != nil {
		return err
	}

	if err = validation.ValidateStruct(&r, selected...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLoginRequest, err)
	}
	return nil
}

func selectRules(rules map[string]*validation.FieldRules, fields []string) ([]*validation.FieldRules, error) {
	selected := make([]*validation.FieldRules, 0, len(fields))
	for _, field := range fields {
		rule, ok := rules[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		selected = append(selected, rule)
	}
	return selected, nil
}
