// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks account requests before they reach the
// credential store.
//
// Rules are declared with ozzo-validation. A [Validator] may be asked to
// check only some fields of a request, which lets a caller interleave
// validation steps with other work (the register flow checks the text fields,
// then looks for duplicates, and only then requires the avatar).
package validators

import "context"

// Validator checks a request value. When fields are given, only the rules
// for those fields run.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
