package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/handlers"
	"github.com/amirphl/Omoikane/app/middleware"
	"github.com/amirphl/Omoikane/app/router"
	"github.com/amirphl/Omoikane/app/services"
	"github.com/amirphl/Omoikane/app/validation"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/amirphl/Omoikane/config"
	"github.com/amirphl/Omoikane/repository"
	testingutil "github.com/amirphl/Omoikane/testing"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt-signing-32-chars"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

type testServer struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			AuthRateLimit:   1000,
			GlobalRateLimit: 1000,
			RateLimitWindow: time.Minute,
		},
		Metrics:    config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Deployment: config.DeploymentConfig{Environment: "development", Version: "test"},
	}
}

func newTestServer(t *testing.T, testDB *testingutil.TestDB) *testServer {
	t.Helper()
	db := testDB.DB

	adminRepo := repository.NewAdminAuthRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	specializationRepo := repository.NewSpecializationRepository(db)
	paymentMethodRepo := repository.NewPaymentMethodRepository(db)
	emailPaymentDetailRepo := repository.NewEmailPaymentDetailRepository(db)

	tokenService, err := services.NewTokenService(time.Hour, 24*time.Hour, "test-issuer", "test-audience", false, "", "", testSecret, nil)
	require.NoError(t, err)

	authFlow := businessflow.NewAdminAuthFlow(adminRepo, tokenService, nil, services.NewNotificationService(services.NewMockEmailProvider()), businessflow.AdminAuthOptions{
		BcryptCost:    bcrypt.MinCost,
		PublicBaseURL: "http://localhost:8080",
	})
	specializationFlow := businessflow.NewSpecializationFlow(specializationRepo)

	v := validation.New()
	h := router.Handlers{
		AdminAuth: handlers.NewAdminAuthHandler(authFlow, v),
		Profile:   handlers.NewProfileHandler(businessflow.NewProfileFlow(adminRepo, repository.NewAdminDetailsRepository(db), db), v),
		Catalog: []router.RouteRegistrar{
			handlers.NewCatalogHandler[dto.ServiceRequest, dto.ServiceDTO](businessflow.NewServiceFlow(serviceRepo), "services", "service", v),
			handlers.NewCatalogHandler[dto.PaymentMethodRequest, dto.PaymentMethodDTO](businessflow.NewPaymentMethodFlow(paymentMethodRepo), "payment-methods", "payment method", v),
		},
		Specializations:     handlers.NewSpecializationHandler(specializationFlow, v),
		AdminPaymentMethods: handlers.NewAdminPaymentMethodHandler(businessflow.NewAdminPaymentMethodFlow(repository.NewAdminPaymentMethodRepository(db), paymentMethodRepo, emailPaymentDetailRepo, db), v),
		CatalogExport: handlers.NewCatalogExportHandler(businessflow.NewCatalogExportFlow(businessflow.CatalogRepositories{
			Services:        serviceRepo,
			Specializations: specializationRepo,
			PaymentMethods:  paymentMethodRepo,
			Languages:       repository.NewLanguageRepository(db),
			Currencies:      repository.NewCurrencyRepository(db),
			Units:           repository.NewUnitRepository(db),
			Roles:           repository.NewRoleRepository(db),
		}), v),
		UI: handlers.NewUIHandler(specializationFlow, v),
	}

	r := router.NewFiberRouter(testConfig(), h, middleware.NewAuthMiddleware(tokenService), nil)
	r.SetupRoutes()
	return &testServer{t: t, app: r.GetApp()}
}

func (s *testServer) do(method, path string, body any) (*http.Response, []byte) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp, raw
}

func (s *testServer) doJSON(method, path string, body any) (int, envelope) {
	s.t.Helper()
	resp, raw := s.do(method, path, body)
	var env envelope
	require.NoError(s.t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func (s *testServer) login(username, password string) {
	s.t.Helper()
	status, env := s.doJSON(http.MethodPost, "/api/v1/admin/auth/login", dto.AdminLoginRequest{Username: username, Password: password})
	require.Equal(s.t, http.StatusOK, status, env.Message)

	var res dto.AdminLoginResponse
	require.NoError(s.t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(s.t, res.Session.AccessToken)
	s.token = res.Session.AccessToken
}

func TestAdminRoutes(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		admin, err := fixtures.CreateTestAdmin()
		require.NoError(t, err)

		t.Run("PublicEndpoints", func(t *testing.T) {
			s := newTestServer(t, testDB)

			status, env := s.doJSON(http.MethodGet, "/api/v1/health", nil)
			assert.Equal(t, http.StatusOK, status)
			assert.True(t, env.Success)

			resp, raw := s.do(http.MethodGet, "/metrics", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(raw), "omoikane_http_requests_total")

			resp, _ = s.do(http.MethodGet, "/api/v1/swagger.json", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			status, env = s.doJSON(http.MethodGet, "/does-not-exist", nil)
			assert.Equal(t, http.StatusNotFound, status)
			assert.Equal(t, "NOT_FOUND", env.Error.Code)
		})

		t.Run("AuthenticationRequired", func(t *testing.T) {
			s := newTestServer(t, testDB)

			status, _ := s.doJSON(http.MethodGet, "/api/v1/admin/services", nil)
			assert.Equal(t, http.StatusUnauthorized, status)

			s.token = "not-a-jwt"
			status, _ = s.doJSON(http.MethodGet, "/api/v1/admin/profile", nil)
			assert.Equal(t, http.StatusUnauthorized, status)
		})

		t.Run("LoginWithWrongPassword", func(t *testing.T) {
			s := newTestServer(t, testDB)

			status, env := s.doJSON(http.MethodPost, "/api/v1/admin/auth/login", dto.AdminLoginRequest{Username: admin.Username, Password: "WrongPass123!"})
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
		})

		t.Run("ServiceCRUD", func(t *testing.T) {
			s := newTestServer(t, testDB)
			s.login(admin.Username, testingutil.TestAdminPassword)

			status, env := s.doJSON(http.MethodPost, "/api/v1/admin/services", dto.ServiceRequest{Name: "Interpreting"})
			require.Equal(t, http.StatusCreated, status, env.Message)
			var created dto.ServiceDTO
			require.NoError(t, json.Unmarshal(env.Data, &created))
			assert.Equal(t, "Interpreting", created.Name)

			status, env = s.doJSON(http.MethodPost, "/api/v1/admin/services", dto.ServiceRequest{Name: "Interpreting"})
			assert.Equal(t, http.StatusConflict, status)

			status, env = s.doJSON(http.MethodPost, "/api/v1/admin/services", dto.ServiceRequest{Name: "   "})
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

			path := fmt.Sprintf("/api/v1/admin/services/%d", created.ID)
			status, env = s.doJSON(http.MethodPut, path, dto.ServiceRequest{Name: "Subtitling"})
			require.Equal(t, http.StatusOK, status, env.Message)

			status, env = s.doJSON(http.MethodGet, "/api/v1/admin/services?search=subtit", nil)
			require.Equal(t, http.StatusOK, status)
			var page dto.ListResponse[dto.ServiceDTO]
			require.NoError(t, json.Unmarshal(env.Data, &page))
			require.Len(t, page.Items, 1)
			assert.Equal(t, "Subtitling", page.Items[0].Name)

			status, _ = s.doJSON(http.MethodGet, "/api/v1/admin/services?page_size=500", nil)
			assert.Equal(t, http.StatusBadRequest, status)

			status, _ = s.doJSON(http.MethodDelete, path, nil)
			assert.Equal(t, http.StatusOK, status)

			status, _ = s.doJSON(http.MethodGet, path, nil)
			assert.Equal(t, http.StatusNotFound, status)

			status, env = s.doJSON(http.MethodGet, "/api/v1/admin/services/abc", nil)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "INVALID_ID", env.Error.Code)
		})

		t.Run("MyPaymentMethods", func(t *testing.T) {
			s := newTestServer(t, testDB)
			s.login(admin.Username, testingutil.TestAdminPassword)

			method, err := fixtures.CreateTestPaymentMethod()
			require.NoError(t, err)

			isDefault := true
			status, env := s.doJSON(http.MethodPost, "/api/v1/admin/payment-methods/mine", dto.AdminPaymentMethodRequest{PaymentMethodID: method.ID, IsDefault: &isDefault})
			require.Equal(t, http.StatusCreated, status, env.Message)

			status, env = s.doJSON(http.MethodGet, "/api/v1/admin/payment-methods/mine", nil)
			require.Equal(t, http.StatusOK, status)
			var items []dto.AdminPaymentMethodDTO
			require.NoError(t, json.Unmarshal(env.Data, &items))
			require.Len(t, items, 1)
			assert.True(t, items[0].IsDefault)

			status, _ = s.doJSON(http.MethodPost, "/api/v1/admin/payment-methods/mine", dto.AdminPaymentMethodRequest{PaymentMethodID: 999999})
			assert.Equal(t, http.StatusBadRequest, status)
		})

		t.Run("ProfileUpdate", func(t *testing.T) {
			s := newTestServer(t, testDB)
			s.login(admin.Username, testingutil.TestAdminPassword)

			company := "Acme Translations"
			status, env := s.doJSON(http.MethodPut, "/api/v1/admin/profile", dto.AdminDetailsRequest{CompanyName: &company})
			require.Equal(t, http.StatusOK, status, env.Message)

			var profile dto.AdminProfileResponse
			require.NoError(t, json.Unmarshal(env.Data, &profile))
			require.NotNil(t, profile.CompanyName)
			assert.Equal(t, company, *profile.CompanyName)
		})

		t.Run("SpecializationUI", func(t *testing.T) {
			s := newTestServer(t, testDB)
			s.login(admin.Username, testingutil.TestAdminPassword)

			status, env := s.doJSON(http.MethodPost, "/api/v1/admin/specializations", dto.SpecializationRequest{DomainName: "Medical"})
			require.Equal(t, http.StatusCreated, status, env.Message)
			var spec dto.SpecializationDTO
			require.NoError(t, json.Unmarshal(env.Data, &spec))
			assert.True(t, spec.ActiveFlag)

			resp, raw := s.do(http.MethodGet, "/api/v1/admin/ui/specializations", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
			assert.Contains(t, string(raw), "Medical")

			resp, raw = s.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/ui/specializations/%d/toggle", spec.ID), nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(raw), fmt.Sprintf(`id="specialization-%d"`, spec.ID))
			assert.NotContains(t, string(raw), " checked")

			active := true
			status, env = s.doJSON(http.MethodPatch, fmt.Sprintf("/api/v1/admin/specializations/%d/active", spec.ID), dto.SetActiveRequest{ActiveFlag: &active})
			require.Equal(t, http.StatusOK, status, env.Message)
			require.NoError(t, json.Unmarshal(env.Data, &spec))
			assert.True(t, spec.ActiveFlag)
		})

		t.Run("CatalogExport", func(t *testing.T) {
			s := newTestServer(t, testDB)
			s.login(admin.Username, testingutil.TestAdminPassword)

			resp, raw := s.do(http.MethodGet, "/api/v1/admin/catalog/export", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
			assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
			// xlsx files are zip archives
			assert.True(t, bytes.HasPrefix(raw, []byte("PK")))
		})

		return nil
	})
	require.NoError(t, err)
}
