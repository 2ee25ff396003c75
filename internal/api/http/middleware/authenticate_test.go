package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpctx "github.com/Gi2009/cod-back/internal/api/http/context"
	"github.com/Gi2009/cod-back/internal/mocks"
	"github.com/Gi2009/cod-back/internal/model"
	"github.com/Gi2009/cod-back/internal/testutil"
)

func TestAuthenticate_Handler(t *testing.T) {
	t.Parallel()

	validID := uuid.New()

	tests := []struct {
		name         string
		header       string
		expectToken  string
		tokenUserID  uuid.UUID
		tokenErr     error
		wantStatus   int
		wantBody     string
		expectCalled bool
	}{
		{
			name:       "missing authorization header",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"No authentication token, access denied"}`,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"No authentication token, access denied"}`,
		},
		{
			name:       "empty bearer",
			header:     "Bearer ",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"No authentication token, access denied"}`,
		},
		{
			name:        "invalid token",
			header:      "Bearer invalid",
			expectToken: "invalid",
			tokenErr:    fmt.Errorf("failed to parse token: %w: %w", model.ErrInvalidToken, errors.New("bad signature")),
			wantStatus:  http.StatusUnauthorized,
			wantBody:    `{"message":"Token is not valid"}`,
		},
		{
			name:        "user no longer exists",
			header:      "Bearer token",
			expectToken: "token",
			tokenErr:    fmt.Errorf("failed to get user by id: %w", model.ErrNotFound),
			wantStatus:  http.StatusUnauthorized,
			wantBody:    `{"message":"Token is not valid"}`,
		},
		{
			name:        "user store unavailable",
			header:      "Bearer token",
			expectToken: "token",
			tokenErr:    fmt.Errorf("failed to get user by id: %w", errors.New("connection refused")),
			wantStatus:  http.StatusInternalServerError,
			wantBody:    `{"message":"Internal server error"}`,
		},
		{
			name:        "nil user id from token",
			header:      "Bearer token",
			expectToken: "token",
			tokenUserID: uuid.Nil,
			wantStatus:  http.StatusUnauthorized,
			wantBody:    `{"message":"Token is not valid"}`,
		},
		{
			name:         "valid token",
			header:       "Bearer token",
			expectToken:  "token",
			tokenUserID:  validID,
			wantStatus:   http.StatusOK,
			expectCalled: true,
		},
		{
			name:         "scheme is case insensitive",
			header:       "bearer token",
			expectToken:  "token",
			tokenUserID:  validID,
			wantStatus:   http.StatusOK,
			expectCalled: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewTokenService(t)
			if tt.expectToken != "" {
				svc.On("GetUserID", mock.Anything, tt.expectToken).Return(tt.tokenUserID, tt.tokenErr)
			}
			cm := httpctx.NewManager()
			m := NewAuthenticate(svc, cm, testutil.MakeNoopLogger())

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, ok := cm.GetUserIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, tt.tokenUserID, got)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/activities", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			m.Handler(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.expectCalled, called)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAuthenticate_UsesContextManager(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := mocks.NewTokenService(t)
	svc.On("GetUserID", mock.Anything, "tok").Return(id, nil)
	cm := mocks.NewContextManager(t)
	cm.On("SetUserIDToContext", mock.Anything, id).Return(context.Background())

	m := NewAuthenticate(svc, cm, testutil.MakeNoopLogger())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()

	m.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
