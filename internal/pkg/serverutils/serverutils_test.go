package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("missing")

type createRequest struct {
	Ids []string `json:"ids" validate:"required,min=1"`
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(ErrorMapping{Err: errMissing, Status: fiber.StatusNotFound}))
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		return fmt.Errorf("lookup 19001: %w", errMissing)
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/teapot", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Post("/validate", func(ctx *fiber.Ctx) error {
		var req createRequest
		if err := ValidateRequest(ctx, &req); err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", req.Ids))
	})
	return app
}

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"mapped sentinel", "GET", "/missing", "", fiber.StatusNotFound},
		{"unmapped error", "GET", "/boom", "", fiber.StatusInternalServerError},
		{"fiber error", "GET", "/teapot", "", fiber.StatusTeapot},
		{"validation error", "POST", "/validate", `{"ids":[]}`, fiber.StatusBadRequest},
		{"malformed body", "POST", "/validate", `{"ids":`, fiber.StatusBadRequest},
		{"valid body", "POST", "/validate", `{"ids":["19001"]}`, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decode(t, resp.Body)
			assert.Equal(t, tt.status == fiber.StatusOK, body["success"])
		})
	}
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJwtMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", JwtMiddleware("secret"), func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals(ClientLocal).(string))
	})

	valid := signedToken(t, "secret", jwt.MapClaims{"sub": "dashboard", "exp": time.Now().Add(time.Hour).Unix()})
	expired := signedToken(t, "secret", jwt.MapClaims{"sub": "dashboard", "exp": time.Now().Add(-time.Hour).Unix()})
	wrongKey := signedToken(t, "other", jwt.MapClaims{"sub": "dashboard", "exp": time.Now().Add(time.Hour).Unix()})
	noExp := signedToken(t, "secret", jwt.MapClaims{"sub": "dashboard"})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + valid, fiber.StatusOK},
		{"missing", "", fiber.StatusUnauthorized},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, fiber.StatusUnauthorized},
		{"no expiry", "Bearer " + noExp, fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
