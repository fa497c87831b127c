package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
	apphttp "github.com/ngvyshop/chatorder-api/internal/interfaces/http"
	pkgjwt "github.com/ngvyshop/chatorder-api/pkg/jwt"
)

const testJWTSecret = "middleware-test-secret"

type memAccounts struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
}

func (m *memAccounts) Create(a *entity.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.PlatformID] = a
	return nil
}

func (m *memAccounts) GetByPlatformID(platformID string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts[platformID], nil
}

func (m *memAccounts) UpdateMappedSender(string, string) (bool, error)        { return false, nil }
func (m *memAccounts) SetOwner(string, string) (bool, error)                  { return false, nil }
func (m *memAccounts) SearchStaffByName(string) ([]*entity.Account, error)    { return nil, nil }
func (m *memAccounts) ListStaffByOwner(string) ([]*entity.Account, error)     { return nil, nil }
func (m *memAccounts) Delete(string) (bool, error)                            { return false, nil }

func buildScopeApp(accounts *memAccounts, ownerOnly bool) *fiber.App {
	accountUC := usecase.NewAccountUseCase(accounts, nil, usecase.SessionConfig{
		JWTSecret:  testJWTSecret,
		ExpMinutes: 60,
		Issuer:     "test",
	}, zerolog.Nop())

	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AccessMiddleware(accountUC, testJWTSecret)}
	if ownerOnly {
		handlers = append(handlers, apphttp.RequireOwner())
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		scope := apphttp.GetScope(c)
		return c.JSON(fiber.Map{
			"platform_id":      scope.PlatformID,
			"role":             scope.Role,
			"acting_sender_id": scope.ActingSenderID,
		})
	})
	app.Get("/scoped", handlers...)
	return app
}

func getScoped(t *testing.T, app *fiber.App, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedAccounts() *memAccounts {
	return &memAccounts{accounts: map[string]*entity.Account{
		"fb-owner": {PlatformID: "fb-owner", Role: entity.RoleOwner, MappedSenderID: "sender-7"},
		"fb-staff": {PlatformID: "fb-staff", Role: entity.RoleStaff, OwnerID: "fb-owner"},
	}}
}

func TestAccessMiddlewareUserIDHeader(t *testing.T) {
	app := buildScopeApp(seedAccounts(), false)

	resp := getScoped(t, app, map[string]string{"User-Id": "fb-owner"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "fb-owner", body["platform_id"])
	assert.Equal(t, entity.RoleOwner, body["role"])
	assert.Equal(t, "sender-7", body["acting_sender_id"])
}

func TestAccessMiddlewareStaffInheritsOwnerScope(t *testing.T) {
	app := buildScopeApp(seedAccounts(), false)

	resp := getScoped(t, app, map[string]string{"User-Id": "fb-staff"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, entity.RoleStaff, body["role"])
	assert.Equal(t, "sender-7", body["acting_sender_id"], "staff acts within the owner's conversation")
}

func TestAccessMiddlewareBearerToken(t *testing.T) {
	app := buildScopeApp(seedAccounts(), false)

	token, err := pkgjwt.Generate(testJWTSecret, "fb-owner", entity.RoleOwner, "test", 60)
	require.NoError(t, err)

	resp := getScoped(t, app, map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "fb-owner", body["platform_id"])
}

func TestAccessMiddlewareRejectsInvalidToken(t *testing.T) {
	app := buildScopeApp(seedAccounts(), false)

	resp := getScoped(t, app, map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAccessMiddlewareMissingIdentity(t *testing.T) {
	app := buildScopeApp(seedAccounts(), false)

	resp := getScoped(t, app, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAccessMiddlewareUnknownAccount(t *testing.T) {
	app := buildScopeApp(seedAccounts(), false)

	resp := getScoped(t, app, map[string]string{"User-Id": "fb-ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequireOwnerRejectsStaff(t *testing.T) {
	app := buildScopeApp(seedAccounts(), true)

	resp := getScoped(t, app, map[string]string{"User-Id": "fb-staff"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = getScoped(t, app, map[string]string{"User-Id": "fb-owner"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
