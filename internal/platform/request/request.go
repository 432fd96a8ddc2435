// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/voyara/internal/platform/constants"
	"github.com/taibuivan/voyara/internal/platform/ctxutil"
	"github.com/taibuivan/voyara/internal/platform/sec"
	"github.com/taibuivan/voyara/internal/platform/validate"
)

// maxBodyBytes bounds admin guide payloads.
const maxBodyBytes = 64 << 10

/*
DecodeJSON reads the request body and decodes it into the target structure.

Description: Bodies larger than 64 KiB and unknown fields are rejected.

Parameters:
  - writer: http.ResponseWriter (used by [http.MaxBytesReader])
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (a wallet address or draft UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// maxSessionIDLength bounds client-supplied session identifiers.
const maxSessionIDLength = 128

/*
Owner identifies who per-visitor state (such as search history) belongs to.

Description: Authenticated requests resolve to "user:<id>". Anonymous
requests carrying an X-Session-ID header resolve to "session:<id>".
Anything else resolves to "", which callers treat as "do not persist".

Returns:
  - string: The namespaced owner key, or ""
*/
func Owner(request *http.Request) string {
	if claims := Claims(request); claims != nil && claims.UserID != "" {
		return "user:" + claims.UserID
	}

	session := strings.TrimSpace(request.Header.Get(constants.HeaderXSessionID))
	if session == "" || len(session) > maxSessionIDLength {
		return ""
	}
	return "session:" + session
}
