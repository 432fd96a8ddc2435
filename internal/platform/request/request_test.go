// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voyara/internal/platform/apperr"
	"github.com/taibuivan/voyara/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/voyara/internal/platform/request"
	"github.com/taibuivan/voyara/internal/platform/sec"
)

func TestOwner(t *testing.T) {
	t.Run("authenticated_user_wins", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Session-ID", "abc")
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "0x1"}))

		assert.Equal(t, "user:0x1", requestutil.Owner(request))
	})

	t.Run("session_header", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Session-ID", "  abc  ")

		assert.Equal(t, "session:abc", requestutil.Owner(request))
	})

	t.Run("anonymous", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, "", requestutil.Owner(request))
	})

	t.Run("oversized_session_ignored", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Session-ID", strings.Repeat("a", 500))

		assert.Equal(t, "", requestutil.Owner(request))
	})
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	request := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":"Lan"}`))
	require.NoError(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target))
	assert.Equal(t, "Lan", target.Name)

	tests := map[string]string{
		"malformed":     `{`,
		"unknown_field": `{"name":"Lan","wallet_balance":12}`,
		"oversized":     `{"name":"` + strings.Repeat("a", 70<<10) + `"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
			err := requestutil.DecodeJSON(httptest.NewRecorder(), request, &target)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}
