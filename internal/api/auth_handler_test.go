package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

func testAuthHandler(userStore *mocks.MockUserStore, jwtService *mocks.MockJWTService, verifier *mocks.MockPasswordVerifier) *AuthHandler {
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthHandler(
		userStore,
		jwtService,
		&mocks.MockPasswordHasher{},
		verifier,
		config.AuthConfig{TokenLifetimeMinutes: 60, RefreshTokenLifetimeMinutes: 10080},
		testLogger,
	)
}

func postJSON(t *testing.T, target string, payload interface{}) *http.Request {
	t.Helper()
	payloadBytes, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantToken  bool
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"name":     "Test User",
				"email":    "test@example.com",
				"password": "password123",
			},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"name":     "Test User",
				"email":    "invalid-email",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"name":     "Test User",
				"email":    "test2@example.com",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing name",
			payload: map[string]interface{}{
				"email":    "test3@example.com",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"name":  "Test User",
				"email": "test4@example.com",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := mocks.NewMockUserStore()
			jwtService := &mocks.MockJWTService{Token: "test-token", RefreshToken: "test-refresh"}
			handler := testAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{ShouldSucceed: true})

			recorder := httptest.NewRecorder()
			handler.Register(recorder, postJSON(t, "/api/auth/register", tt.payload))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				var authResp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&authResp))
				assert.NotEqual(t, uuid.Nil, authResp.UserID)
				assert.Equal(t, domain.RoleUser, authResp.Role)
				assert.Equal(t, "test-token", authResp.AccessToken)
				assert.Equal(t, "test-refresh", authResp.RefreshToken)
				assert.NotEmpty(t, authResp.ExpiresAt)
			}
		})
	}
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	jwtService := &mocks.MockJWTService{Token: "test-token"}
	handler := testAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{})

	recorder := httptest.NewRecorder()
	handler.Register(recorder, postJSON(t, "/api/auth/register", map[string]interface{}{
		"name":     "Test User",
		"email":    "hash@example.com",
		"password": "password123",
	}))

	require.Equal(t, http.StatusCreated, recorder.Code)

	stored, err := userStore.GetByEmail(context.Background(), "hash@example.com")
	require.NoError(t, err)
	assert.Empty(t, stored.Password)
	assert.Equal(t, "hashed:password123", stored.HashedPassword)
	// Registration never grants elevated access
	assert.Equal(t, domain.RoleUser, stored.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	existing, err := domain.NewUser("Existing", "dup@example.com", "password123")
	require.NoError(t, err)
	existing.HashedPassword = "hash"
	existing.Password = ""
	userStore.Add(existing)

	jwtService := &mocks.MockJWTService{Token: "test-token"}
	handler := testAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{})

	recorder := httptest.NewRecorder()
	handler.Register(recorder, postJSON(t, "/api/auth/register", map[string]interface{}{
		"name":     "Another",
		"email":    "dup@example.com",
		"password": "password123",
	}))

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("Login User", "login@example.com", "password123")
	require.NoError(t, err)
	user.HashedPassword = "stored-hash"
	user.Password = ""

	tests := []struct {
		name         string
		email        string
		password     string
		verifierOK   bool
		wantStatus   int
		wantResponse bool
	}{
		{
			name:         "valid credentials",
			email:        "login@example.com",
			password:     "password123",
			verifierOK:   true,
			wantStatus:   http.StatusOK,
			wantResponse: true,
		},
		{
			name:       "wrong password",
			email:      "login@example.com",
			password:   "wrong-password",
			verifierOK: false,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown email",
			email:      "nobody@example.com",
			password:   "password123",
			verifierOK: true,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := mocks.NewMockUserStore()
			userStore.Add(user)
			jwtService := &mocks.MockJWTService{Token: "test-token", RefreshToken: "test-refresh"}
			handler := testAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{ShouldSucceed: tt.verifierOK})

			recorder := httptest.NewRecorder()
			handler.Login(recorder, postJSON(t, "/api/auth/login", map[string]interface{}{
				"email":    tt.email,
				"password": tt.password,
			}))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantResponse {
				var authResp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&authResp))
				assert.Equal(t, user.ID, authResp.UserID)
				assert.Equal(t, "test-token", authResp.AccessToken)
			}
		})
	}
}

func TestLoginUnknownEmailIndistinguishable(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	user, err := domain.NewUser("Login User", "known@example.com", "password123")
	require.NoError(t, err)
	user.HashedPassword = "stored-hash"
	userStore.Add(user)

	jwtService := &mocks.MockJWTService{Token: "test-token"}
	handler := testAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{ShouldSucceed: false})

	bodies := make([]string, 0, 2)
	for _, email := range []string{"known@example.com", "unknown@example.com"} {
		recorder := httptest.NewRecorder()
		handler.Login(recorder, postJSON(t, "/api/auth/login", map[string]interface{}{
			"email":    email,
			"password": "whatever123",
		}))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var errResp struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&errResp))
		bodies = append(bodies, errResp.Error)
	}

	assert.Equal(t, bodies[0], bodies[1], "unknown email and wrong password must be indistinguishable")
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name        string
		payload     map[string]interface{}
		claims      *auth.Claims
		validateErr error
		wantStatus  int
	}{
		{
			name:       "valid refresh token",
			payload:    map[string]interface{}{"refresh_token": "good-refresh"},
			claims:     &auth.Claims{UserID: userID, Role: domain.RoleUser, TokenType: "refresh"},
			wantStatus: http.StatusOK,
		},
		{
			name:        "expired refresh token",
			payload:     map[string]interface{}{"refresh_token": "expired"},
			validateErr: auth.ErrExpiredRefreshToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "access token used as refresh token",
			payload:     map[string]interface{}{"refresh_token": "access-token"},
			validateErr: auth.ErrWrongTokenType,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:       "missing refresh token",
			payload:    map[string]interface{}{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := mocks.NewMockUserStore()
			jwtService := &mocks.MockJWTService{
				Token:        "new-access",
				RefreshToken: "new-refresh",
				Claims:       tt.claims,
				ValidateErr:  tt.validateErr,
			}
			handler := testAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{})

			recorder := httptest.NewRecorder()
			handler.RefreshToken(recorder, postJSON(t, "/api/auth/refresh", tt.payload))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp RefreshTokenResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, "new-access", resp.AccessToken)
				assert.Equal(t, "new-refresh", resp.RefreshToken)
				assert.NotEmpty(t, resp.ExpiresAt)
			}
		})
	}
}
