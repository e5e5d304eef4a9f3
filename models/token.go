package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes access tokens from refresh tokens. It is embedded
// in every token as the "typ" claim so one kind can never be accepted in
// place of the other.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Claims is the payload of both access and refresh tokens.
//
// It carries the public identity attributes only; no secrets. The embedded
// [jwt.RegisteredClaims] provide iss, sub, iat, exp and jti.
type Claims struct {
	UserID   string    `json:"_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Kind     TokenKind `json:"typ"`

	jwt.RegisteredClaims
}

// NewClaims builds the identity part of the claims for user.
func NewClaims(user User, kind TokenKind) Claims {
	return Claims{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Kind:     kind,
	}
}

// TokenPair is the access/refresh pair issued on login and on rotation.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
