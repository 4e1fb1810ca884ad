package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/attendance-api/internal/application/auth"
	"github.com/jhoicas/attendance-api/internal/application/dto"
	"github.com/jhoicas/attendance-api/internal/application/usecase"
	"github.com/jhoicas/attendance-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/attendance-api/internal/interfaces/http"
	"github.com/jhoicas/attendance-api/pkg/logger"
)

type testEnv struct {
	app    *fiber.App
	userUC *usecase.UserUseCase
}

func newTestEnv(t *testing.T, adminGuard bool) *testEnv {
	t.Helper()
	repo := memory.NewUserRepository()
	authUC := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin}, bcrypt.MinCost)
	userUC := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		JWTSecret:  testJWTSecret,
		AdminGuard: adminGuard,
		Log:        logger.Nop(),
	})
	return &testEnv{app: app, userUC: userUC}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

// seedUser crea un usuario con el rol indicado y devuelve su token de login.
func (e *testEnv) seedUser(t *testing.T, email, code, role string) string {
	t.Helper()
	_, err := e.userUC.Create(context.Background(), dto.CreateUserRequest{
		FullName: "Seed " + role,
		Email:    email,
		Password: "secret123",
		Code:     code,
		Role:     role,
	})
	require.NoError(t, err)
	return e.login(t, email, "secret123")
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func registerBody(email, code string) map[string]string {
	return map[string]string{"fullName": "Ana Pérez", "email": email, "password": "secret123", "code": code}
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_Y_Duplicado(t *testing.T) {
	env := newTestEnv(t, true)

	resp, body := env.do(t, http.MethodPost, "/register", "", registerBody("ana@example.com", "W-1"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", body["message"])

	// mismo email con otra capitalización
	resp, body = env.do(t, http.MethodPost, "/register", "", registerBody("  ANA@example.com ", "W-2"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", body["message"])
	assert.Equal(t, "DUPLICATE_ACCOUNT", body["code"])
}

func TestRegister_CamposFaltantes(t *testing.T) {
	env := newTestEnv(t, true)

	resp, body := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "fullName")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "code")
}

func TestRegister_CuerpoInvalido(t *testing.T) {
	env := newTestEnv(t, true)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_OK_Y_CredencialesInvalidas(t *testing.T) {
	env := newTestEnv(t, true)
	resp, _ := env.do(t, http.MethodPost, "/register", "", registerBody("ana@example.com", "W-1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "Ana@Example.com", "password": "secret123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	respWrong, bodyWrong := env.do(t, http.MethodPost, "/login", "", map[string]string{"email": "ana@example.com", "password": "nope"})
	respUnknown, bodyUnknown := env.do(t, http.MethodPost, "/login", "", map[string]string{"email": "ghost@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, respWrong.StatusCode)
	assert.Equal(t, respWrong.StatusCode, respUnknown.StatusCode)
	assert.Equal(t, bodyWrong, bodyUnknown)
	assert.Equal(t, "Invalid email or password", bodyWrong["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Users (admin)
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_SinToken_Y_RolInsuficiente(t *testing.T) {
	env := newTestEnv(t, true)

	resp, _ := env.do(t, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	workerTok := env.seedUser(t, "w@example.com", "W-1", "worker")
	resp, body := env.do(t, http.MethodGet, "/api/users", workerTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestUsers_CRUD(t *testing.T) {
	env := newTestEnv(t, true)
	adminTok := env.seedUser(t, "admin@example.com", "A-1", "admin")

	sup := "sup-1"
	resp, body := env.do(t, http.MethodPost, "/users", adminTok, map[string]interface{}{
		"fullName":      "Luis Gómez",
		"email":         "Luis@Example.com",
		"password":      "secret123",
		"code":          "W-10",
		"role":          "worker",
		"supervisor_id": sup,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User created successfully", body["message"])
	user := body["user"].(map[string]interface{})
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
	assert.Equal(t, "luis@example.com", user["email"])
	assert.Equal(t, sup, user["supervisor_id"])
	id := user["id"].(string)
	require.NotEmpty(t, id)

	// duplicado por code
	resp, body = env.do(t, http.MethodPost, "/users", adminTok, map[string]interface{}{
		"fullName": "Otro", "email": "otro@example.com", "password": "x", "code": "W-10", "role": "worker",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User with this email or code already exists", body["message"])

	// rol inválido
	resp, body = env.do(t, http.MethodPost, "/users", adminTok, map[string]interface{}{
		"fullName": "Otro", "email": "otro@example.com", "password": "x", "code": "W-11", "role": "root",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["fields"], "role")

	resp, body = env.do(t, http.MethodGet, "/users/"+id, adminTok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Luis Gómez", body["fullName"])
	assert.NotContains(t, body, "password")

	// la lista es un array JSON: se decodifica aparte
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	listResp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	listResp.Body.Close()
	assert.Len(t, list, 2)
	for _, u := range list {
		assert.NotContains(t, u, "password")
	}

	// al pasar a supervisor se descarta supervisor_id
	resp, body = env.do(t, http.MethodPut, "/users/"+id, adminTok, map[string]interface{}{
		"fullName": "Luis G.", "email": "luis@example.com", "code": "W-10", "role": "supervisor", "supervisor_id": sup,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User updated successfully", body["message"])
	updated := body["user"].(map[string]interface{})
	assert.Equal(t, "supervisor", updated["role"])
	assert.Nil(t, updated["supervisor_id"])

	// la contraseña no cambia con el update
	env.login(t, "luis@example.com", "secret123")

	resp, body = env.do(t, http.MethodDelete, "/users/"+id, adminTok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User deleted successfully", body["message"])

	resp, body = env.do(t, http.MethodGet, "/users/"+id, adminTok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["message"])

	resp, _ = env.do(t, http.MethodDelete, "/users/"+id, adminTok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = env.do(t, http.MethodPut, "/users/"+id, adminTok, map[string]interface{}{
		"fullName": "X", "email": "x@example.com", "code": "X-1", "role": "worker",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsers_UpdateColisiona(t *testing.T) {
	env := newTestEnv(t, true)
	adminTok := env.seedUser(t, "admin@example.com", "A-1", "admin")
	_, body := env.do(t, http.MethodPost, "/users", adminTok, map[string]interface{}{
		"fullName": "B", "email": "b@example.com", "password": "x", "code": "B-1", "role": "management",
	})
	id := body["user"].(map[string]interface{})["id"].(string)

	resp, body := env.do(t, http.MethodPut, "/users/"+id, adminTok, map[string]interface{}{
		"fullName": "B", "email": "admin@example.com", "code": "B-1", "role": "management",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_ACCOUNT", body["code"])
}

func TestUsers_AdminEliminado_PierdeAcceso(t *testing.T) {
	env := newTestEnv(t, true)
	adminTok := env.seedUser(t, "admin@example.com", "A-1", "admin")

	list, err := env.userUC.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, env.userUC.Delete(context.Background(), list[0].ID))

	resp, _ := env.do(t, http.MethodGet, "/users", adminTok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUsers_SinGuard(t *testing.T) {
	env := newTestEnv(t, false)

	resp, body := env.do(t, http.MethodPost, "/api/users", "", map[string]interface{}{
		"fullName": "Admin", "email": "root@example.com", "password": "x", "code": "R-1", "role": "admin",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User created successfully", body["message"])

	resp, _ = env.do(t, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
