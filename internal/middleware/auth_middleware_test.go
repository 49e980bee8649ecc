package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"exam-byte/internal/config"
	"exam-byte/internal/dto"
	"exam-byte/internal/logger"
	"exam-byte/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	os.Exit(m.Run())
}

// fakeValidator accepts exactly one token.
type fakeValidator struct {
	token  string
	claims *dto.AuthClaims
}

func (f *fakeValidator) ValidateJWT(_ context.Context, tokenString string) (*dto.AuthClaims, error) {
	if tokenString != f.token {
		return nil, errors.New("invalid JWT token")
	}
	return f.claims, nil
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		claims         *dto.AuthClaims
		expectedStatus int
		expectedBody   string
	}{
		{name: "valid access token", authHeader: "Bearer good", claims: &dto.AuthClaims{UserID: "u1", TokenType: dto.AccessTokenType}, expectedStatus: fiber.StatusOK, expectedBody: "u1"},
		{name: "missing header", authHeader: "", expectedStatus: fiber.StatusUnauthorized, expectedBody: "MISSING_AUTH_HEADER"},
		{name: "wrong scheme", authHeader: "Basic abc", expectedStatus: fiber.StatusUnauthorized, expectedBody: "INVALID_AUTH_SCHEME"},
		{name: "invalid token", authHeader: "Bearer bad", expectedStatus: fiber.StatusUnauthorized, expectedBody: "INVALID_TOKEN"},
		{name: "refresh token", authHeader: "Bearer good", claims: &dto.AuthClaims{UserID: "u1", TokenType: "refresh"}, expectedStatus: fiber.StatusForbidden, expectedBody: "INVALID_TOKEN_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/me", middleware.Protected(&fakeValidator{token: "good", claims: tt.claims}), func(c *fiber.Ctx) error {
				userID, ok := middleware.UserID(c)
				if !ok {
					return c.SendStatus(fiber.StatusInternalServerError)
				}
				return c.SendString(userID)
			})

			req := httptest.NewRequest("GET", "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.expectedBody)
		})
	}
}
