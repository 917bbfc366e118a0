package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/service/authz"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name        string
		authHeader  string
		claims      *auth.Claims
		validateErr error
		wantStatus  int
		wantCaller  bool
		wantRole    domain.Role
	}{
		{
			name:       "valid member token",
			authHeader: "Bearer good-token",
			claims:     &auth.Claims{UserID: userID, Role: domain.RoleUser, TokenType: "access"},
			wantStatus: http.StatusOK,
			wantCaller: true,
			wantRole:   domain.RoleUser,
		},
		{
			name:       "valid admin token",
			authHeader: "Bearer admin-token",
			claims:     &auth.Claims{UserID: userID, Role: domain.RoleAdmin, TokenType: "access"},
			wantStatus: http.StatusOK,
			wantCaller: true,
			wantRole:   domain.RoleAdmin,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "expired token",
			authHeader:  "Bearer expired-token",
			validateErr: auth.ErrExpiredToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "invalid token",
			authHeader:  "Bearer garbage",
			validateErr: auth.ErrInvalidToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "refresh token rejected on access routes",
			authHeader:  "Bearer refresh-token",
			validateErr: auth.ErrWrongTokenType,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "unexpected validation failure",
			authHeader:  "Bearer odd-token",
			validateErr: errors.New("keystore unavailable"),
			wantStatus:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService := &mocks.MockJWTService{
				Claims:      tt.claims,
				ValidateErr: tt.validateErr,
			}
			authMiddleware := NewAuthMiddleware(jwtService)

			var gotCaller authz.Caller
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				caller, ok := GetCaller(r)
				require.True(t, ok)
				gotCaller = caller
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			recorder := httptest.NewRecorder()
			authMiddleware.Authenticate(next).ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantCaller, nextCalled)

			if tt.wantCaller {
				assert.Equal(t, userID, gotCaller.ID)
				assert.Equal(t, tt.wantRole, gotCaller.Role)
			}
		})
	}
}

func TestGetCallerWithoutMiddleware(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	_, ok := GetCaller(req)
	assert.False(t, ok)
}
