package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tube-accounts/models"
)

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		FullName:   "Alice Liddell",
		Email:      "alice@example.com",
		Username:   "alice",
		Password:   "wonderland",
		AvatarPath: "/tmp/staged/avatar.png",
	}
}

// ── register ──

func TestUserValidator_Register_Valid(t *testing.T) {
	v := NewUserValidator()

	assert.NoError(t, v.Validate(context.Background(), validRegisterRequest()))
	req := validRegisterRequest()
	assert.NoError(t, v.Validate(context.Background(), &req))
}

func TestUserValidator_Register_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.RegisterRequest)
	}{
		{"no full name", func(r *models.RegisterRequest) { r.FullName = "" }},
		{"no email", func(r *models.RegisterRequest) { r.Email = "" }},
		{"no username", func(r *models.RegisterRequest) { r.Username = "" }},
		{"no password", func(r *models.RegisterRequest) { r.Password = "" }},
		{"no avatar", func(r *models.RegisterRequest) { r.AvatarPath = "" }},
	}

	v := NewUserValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := v.Validate(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRegisterRequest)
		})
	}
}

func TestUserValidator_Register_TextFieldsOnly_IgnoresAvatar(t *testing.T) {
	v := NewUserValidator()
	req := validRegisterRequest()
	req.AvatarPath = ""

	assert.NoError(t, v.Validate(context.Background(), req, RegisterTextFields...))
	assert.Error(t, v.Validate(context.Background(), req, FieldAvatar))
}

func TestUserValidator_Register_DefaultFieldsDoNotGrowShared(t *testing.T) {
	v := NewUserValidator()
	_ = v.Validate(context.Background(), validRegisterRequest())

	assert.Equal(t, []string{FieldFullName, FieldEmail, FieldUsername, FieldPassword}, RegisterTextFields)
}

func TestUserValidator_Register_UnknownField(t *testing.T) {
	v := NewUserValidator()

	err := v.Validate(context.Background(), validRegisterRequest(), "nickname")
	assert.ErrorIs(t, err, ErrUnknownField)
}

// ── login ──

func TestUserValidator_Login(t *testing.T) {
	tests := []struct {
		name    string
		req     models.LoginRequest
		wantErr bool
	}{
		{"username only", models.LoginRequest{Username: "alice"}, false},
		{"email only", models.LoginRequest{Email: "alice@example.com"}, false},
		{"both", models.LoginRequest{Username: "alice", Email: "alice@example.com"}, false},
		{"neither", models.LoginRequest{Password: "wonderland"}, true},
	}

	v := NewUserValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLoginRequest)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserValidator_Login_Pointer(t *testing.T) {
	v := NewUserValidator()

	assert.Error(t, v.Validate(context.Background(), &models.LoginRequest{}))
}

// ── unsupported ──

func TestUserValidator_UnsupportedType(t *testing.T) {
	v := NewUserValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}
