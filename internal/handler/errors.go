// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated means the server configuration names neither an
// HTTP nor a gRPC address, so there is nothing to serve.
var errNoHandlersAreCreated = errors.New("no handlers are created")
