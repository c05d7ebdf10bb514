package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-secret-key-123456789012345")

func createTestToken(t *testing.T, userID uuid.UUID, isStaff bool, duration time.Duration, key []byte, method jwt.SigningMethod) string {
	t.Helper()

	claims := &models.Claims{
		UserID:  userID,
		Email:   "test@example.com",
		IsStaff: isStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func newRequest(authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return req.WithContext(middleware.WithLogger(req.Context(), logger))
}

func TestAuthenticate(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)
	userID := uuid.New()

	next := func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		require.True(t, ok, "claims should be in context")
		assert.Equal(t, userID, claims.UserID)

		w.WriteHeader(http.StatusOK)
	}

	unauthorized := func(message string) string {
		return `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "` + message + `"}}`
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - Valid token",
			authHeader:     "Bearer " + createTestToken(t, userID, false, time.Hour, testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Failure - Missing header",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Authorization header is required"),
		},
		{
			name:           "Failure - Not a bearer token",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Invalid authorization format"),
		},
		{
			name:           "Failure - Malformed token",
			authHeader:     "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Invalid or expired token"),
		},
		{
			name:           "Failure - Wrong key",
			authHeader:     "Bearer " + createTestToken(t, userID, false, time.Hour, []byte("another-secret-key-0987654321"), jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Invalid or expired token"),
		},
		{
			name:           "Failure - Unexpected signing method",
			authHeader:     "Bearer " + createTestToken(t, userID, false, time.Hour, testJwtKey, jwt.SigningMethodHS512),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Invalid or expired token"),
		},
		{
			name:           "Failure - Expired token",
			authHeader:     "Bearer " + createTestToken(t, userID, false, -time.Hour, testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Invalid or expired token"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			rr := httptest.NewRecorder()

			// Act
			authMiddleware.Authenticate(next).ServeHTTP(rr, newRequest(tc.authHeader))

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestRequireStaff(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)

	next := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}

	t.Run("Success - Staff", func(t *testing.T) {
		rr := httptest.NewRecorder()
		token := createTestToken(t, uuid.New(), true, time.Hour, testJwtKey, jwt.SigningMethodHS256)

		authMiddleware.RequireStaff(next).ServeHTTP(rr, newRequest("Bearer "+token))

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Failure - Customer", func(t *testing.T) {
		rr := httptest.NewRecorder()
		token := createTestToken(t, uuid.New(), false, time.Hour, testJwtKey, jwt.SigningMethodHS256)

		authMiddleware.RequireStaff(next).ServeHTTP(rr, newRequest("Bearer "+token))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.JSONEq(t, `{"success": false, "error": {"code": "FORBIDDEN", "message": "Staff access required"}}`, rr.Body.String())
	})

	t.Run("Failure - Anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()

		authMiddleware.RequireStaff(next).ServeHTTP(rr, newRequest(""))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
