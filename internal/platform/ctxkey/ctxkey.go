// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the typed context keys set by the HTTP middleware.
//
// Read them through ctxutil rather than calling [context.Context.Value] directly.
package ctxkey

// key is unexported so no other package can mint a colliding key.
type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value (string).
	KeyRequestID key = "request_id"

	// KeyUser holds verified bearer claims ([*sec.AuthClaims]). Absent for anonymous searches.
	KeyUser key = "user"

	// KeyLogger holds the request-scoped [*log/slog.Logger].
	KeyLogger key = "logger"
)
