package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/anbar/anbar-api/internal/interfaces/http"
	pkgjwt "github.com/anbar/anbar-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "anbar-test"
	testExpMin    = 60
)

// buildAdminApp aplicación mínima con AuthMiddleware + RequireAdmin delante de un handler dummy.
func buildAdminApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireAdmin(),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func bearer(t *testing.T, userID int64, role string, isAdmin bool) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, isAdmin, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireAdmin_RolAdminAccede(t *testing.T) {
	resp := doGet(t, buildAdminApp(), "/protected", bearer(t, 1, "ADMIN", false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ADMIN", body["role"])
}

func TestRequireAdmin_FlagIsAdminAccede(t *testing.T) {
	resp := doGet(t, buildAdminApp(), "/protected", bearer(t, 1, "USER", true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "is_admin basta aunque el rol sea USER")
}

func TestRequireAdmin_UsuarioNormalRecibe403(t *testing.T) {
	resp := doGet(t, buildAdminApp(), "/protected", bearer(t, 2, "USER", false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireAdmin_SinAuthMiddlewareRecibe401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.RequireAdmin(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp := doGet(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	resp := doGet(t, buildAdminApp(), "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	resp := doGet(t, buildAdminApp(), "/protected", "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenMalformado(t *testing.T) {
	resp := doGet(t, buildAdminApp(), "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretDistinto(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret", 1, "ADMIN", true, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doGet(t, buildAdminApp(), "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UserIDCeroRechazado(t *testing.T) {
	resp := doGet(t, buildAdminApp(), "/protected", bearer(t, 0, "ADMIN", true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"role":     apphttp.GetRole(c),
			"is_admin": apphttp.IsAdmin(c),
		})
	})

	resp := doGet(t, app, "/me", bearer(t, 42, "USER", false))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID  int64  `json:"user_id"`
		Role    string `json:"role"`
		IsAdmin bool   `json:"is_admin"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(42), body.UserID)
	assert.Equal(t, "USER", body.Role)
	assert.False(t, body.IsAdmin)
}
