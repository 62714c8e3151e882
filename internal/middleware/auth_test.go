package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymlog/gymlog-go/internal/crypto"
)

func TestJWTAuth(t *testing.T) {
	issuer := crypto.NewTokenIssuer("test-secret", time.Hour)
	valid, err := issuer.Issue("alice")
	require.NoError(t, err)
	forged, err := crypto.NewTokenIssuer("other-secret", time.Hour).Issue("alice")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantUser: "alice"},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK, wantUser: "alice"},
		{name: "uppercase scheme", header: "BEARER " + valid, wantStatus: http.StatusOK, wantUser: "alice"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "scheme only", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
		{name: "foreign signature", header: "Bearer " + forged, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var gotUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUser, _ = UsernameFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/workouts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			JWTAuth(issuer)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.False(t, called, "next must not run without a valid token")

				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body["msg"])
				return
			}
			assert.Equal(t, tt.wantUser, gotUser)
		})
	}
}

func TestUsernameFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UsernameFromContext(req.Context())
	assert.False(t, ok)
}
