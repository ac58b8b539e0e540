package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"laundrydesk/internal/app"
	"laundrydesk/internal/domain/auth"
	"laundrydesk/pkg/logger"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtSvc := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	authSvc := auth.NewService(
		[]auth.Account{{Username: "admin", PasswordHash: string(hash)}},
		jwtSvc,
		auth.DefaultServiceConfig(),
	)

	a := app.NewInMemory()
	router := NewRouter(RouterConfig{
		Logger:       logger.NewNop(),
		Version:      "test",
		JWTValidator: jwtSvc,
		AuthService:  authSvc,
		Hotels:       a.Hotels,
		Services:     a.Services,
		Finance:      a.Finance,
		Backfill:     a.Backfill,
	})
	return &apiClient{t: t, router: router}
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *apiClient) login() {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "s3cret"})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	c.token = resp.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	api := newAPI(t)

	w := api.do(http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "in-memory")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newAPI(t)

	w := api.do(http.MethodGet, "/api/v1/zones", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestZones(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do(http.MethodGet, "/api/v1/zones", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 5)

	w = api.do(http.MethodPost, "/api/v1/zones/classify", map[string]string{"address": "Av. Colonial 123, Callao"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OESTE", decode(t, w)["zone"])

	w = api.do(http.MethodPost, "/api/v1/zones/classify", map[string]string{"address": "x", "default": "LUNA"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBackfillFlow(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do(http.MethodPost, "/api/v1/catalog/hotels", map[string]any{
		"name":       "Hotel Sol",
		"address":    "Jr. Lima 100, Callao",
		"pricePerKg": "5.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	hotelID := created["id"].(string)
	assert.Equal(t, "OESTE", created["zone"])

	w = api.do(http.MethodPost, "/api/v1/pricing/quote", map[string]any{"weight": "4", "hotelId": hotelID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "20", decode(t, w)["price"])

	w = api.do(http.MethodPost, "/api/v1/services", map[string]any{
		"guestName": "Luis",
		"hotelId":   hotelID,
		"weight":    "10",
		"status":    "en proceso",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	svc := decode(t, w)
	assert.Equal(t, "IN_PROCESS", svc["status"])

	w = api.do(http.MethodGet, "/api/v1/migration/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	preview := decode(t, w)
	assert.Len(t, preview["missingPrice"], 1)
	assert.Equal(t, "50", preview["totalPotentialIncome"])

	w = api.do(http.MethodPost, "/api/v1/migration/run", nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode(t, w)
	assert.EqualValues(t, 1, result["transactionsCreated"])

	w = api.do(http.MethodGet, "/api/v1/transactions/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "50", decode(t, w)["income"])

	w = api.do(http.MethodPost, "/api/v1/transactions/income", map[string]any{
		"amount":    "10",
		"serviceId": svc["id"],
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodGet, "/api/v1/migration/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 1)
}

func TestServiceStatusValidation(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do(http.MethodPost, "/api/v1/services", map[string]any{"guestName": "Eva", "status": "teleported"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodGet, "/api/v1/services?status=bogus", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodGet, "/api/v1/services/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
