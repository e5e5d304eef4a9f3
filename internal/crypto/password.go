// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned by Hash for passwords bcrypt cannot digest
// (longer than 72 bytes).
var ErrPasswordTooLong = errors.New("password is too long")

// bcryptHasher is the private implementation of [PasswordHasher].
type bcryptHasher struct {
	cost int
	// slots is a counting semaphore: a send acquires, a receive releases.
	slots chan struct{}
}

// NewPasswordHasher constructs a bcrypt [PasswordHasher].
//
// cost outside [bcrypt.MinCost, bcrypt.MaxCost] falls back to
// [bcrypt.DefaultCost]; concurrency below 1 falls back to runtime.NumCPU().
func NewPasswordHasher(cost, concurrency int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}

	return &bcryptHasher{
		cost:  cost,
		slots: make(chan struct{}, concurrency),
	}
}

// Hash implements [PasswordHasher].
func (h *bcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	release, err := h.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// Verify implements [PasswordHasher]. The comparison runs in constant time
// with respect to the candidate.
func (h *bcryptHasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	release, err := h.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer release()

	err = bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("error verifying password: %w", err)
	}
}

func (h *bcryptHasher) acquire(ctx context.Context) (func(), error) {
	select {
	case h.slots <- struct{}{}:
		return func() { <-h.slots }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for a hashing slot: %w", ctx.Err())
	}
}
