package http_test

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	ifhttp "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/jwt"
)

func loginTestApp(t *testing.T) *fiber.App {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-correcta"), bcrypt.MinCost)
	require.NoError(t, err)

	uc := auth.NewAuthUseCase(
		[]auth.User{{Email: "admin@tienda.com", PasswordHash: string(hash), Role: "admin"}},
		"mitienda.myshopify.com",
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "ventas-api"},
	)

	app := fiber.New()
	app.Post("/api/auth/login", ifhttp.NewAuthHandler(uc).Login)
	return app
}

func postLogin(t *testing.T, app *fiber.App, body dto.LoginRequest) *nethttp.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodPost, "/api/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestLogin_CredencialesValidasDevuelveJWT(t *testing.T) {
	app := loginTestApp(t)

	resp := postLogin(t, app, dto.LoginRequest{Email: "Admin@Tienda.com", Password: "clave-correcta"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "el email no debe ser sensible a mayúsculas")

	var body dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "admin@tienda.com", body.Email)
	assert.Equal(t, "admin", body.Role)
	assert.Equal(t, 3600, body.ExpiresIn)

	userID, shop, role, err := jwt.Parse(testSecret, body.Token)
	require.NoError(t, err, "el token emitido debe ser verificable")
	assert.Equal(t, body.UserID, userID)
	assert.Equal(t, "mitienda.myshopify.com", shop)
	assert.Equal(t, "admin", role)
}

func TestLogin_PasswordIncorrectaRetorna401(t *testing.T) {
	resp := postLogin(t, loginTestApp(t), dto.LoginRequest{Email: "admin@tienda.com", Password: "otra"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_CREDENTIALS", body.Code)
}

func TestLogin_UsuarioInexistenteRetorna401(t *testing.T) {
	resp := postLogin(t, loginTestApp(t), dto.LoginRequest{Email: "nadie@tienda.com", Password: "clave-correcta"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode,
		"usuario inexistente y contraseña mala deben responder igual")
}

func TestLogin_CuerpoIncompletoRetorna400(t *testing.T) {
	resp := postLogin(t, loginTestApp(t), dto.LoginRequest{Email: "admin@tienda.com"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
