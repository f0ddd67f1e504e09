package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/drelocd/estate-service/internal/auth"
	"github.com/drelocd/estate-service/internal/config"
	"github.com/drelocd/estate-service/internal/db"
	"github.com/drelocd/estate-service/internal/excel"
	"github.com/drelocd/estate-service/internal/http/middleware"
	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/pdf"
	"github.com/drelocd/estate-service/internal/repository"
	"github.com/drelocd/estate-service/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Listing:     config.ListingConfig{DefaultPageSize: 20, MaxPageSize: 200},
	}
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database, "sqlite"))

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	userRepo := repository.NewUserRepository(database)
	_, err = userRepo.Create(context.Background(), model.User{
		Username:     "admin",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	require.NoError(t, err)

	propertyRepo := repository.NewPropertyRepository(database)
	poolRepo := repository.NewTransferPoolRepository(database)
	clientRepo := repository.NewClientRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)
	activityRepo := repository.NewActivityRepository(database)
	jobRepo := repository.NewServiceJobRepository(database)
	paymentRepo := repository.NewServicePaymentRepository(database)

	pdfGen := pdf.NewGenerator()
	issuer := auth.NewIssuer("test-secret", time.Hour)
	parser := auth.NewParser("test-secret")

	cfg := testConfig()
	services := Services{
		Users:      service.NewUserService(userRepo, activityRepo, issuer),
		Properties: service.NewPropertyService(propertyRepo, poolRepo, clientRepo, activityRepo, cfg),
		Clients:    service.NewClientService(clientRepo, activityRepo),
		Sales:      service.NewSalesService(transactionRepo, propertyRepo, clientRepo, activityRepo, pdfGen),
		Transfers:  service.NewTransferService(repository.NewTransferRepository(database), userRepo, clientRepo, activityRepo),
		Lots:       service.NewLotService(repository.NewLotRepository(database), propertyRepo, activityRepo),
		Agents:     service.NewAgentService(repository.NewAgentRepository(database), activityRepo),
		Plans:      service.NewPlanService(repository.NewPlanRepository(database), activityRepo),
		Survey: service.NewSurveyService(
			repository.NewServiceClientRepository(database),
			jobRepo, paymentRepo,
			repository.NewDispatchRepository(database),
			activityRepo, pdfGen,
		),
		Activity:  service.NewActivityService(activityRepo, cfg),
		Dashboard: service.NewDashboardService(propertyRepo, clientRepo, transactionRepo, jobRepo),
		Reports:   service.NewReportService(propertyRepo, paymentRepo, excel.NewGenerator()),
	}

	handler := NewHandler(services, zerolog.Nop())
	return NewRouter(handler, middleware.Auth(parser), "test")
}

func loginToken(t *testing.T, router *gin.Engine) string {
	t.Helper()

	body := `{"username":"admin","password":"s3cret"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginAndProtectedRoute(t *testing.T) {
	router := testRouter(t)
	token := loginToken(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Users []struct {
			Username string `json:"username"`
		} `json:"users"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "admin", resp.Users[0].Username)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users?username=admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"admin"`)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users?username=ghost", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardSummary(t *testing.T) {
	router := testRouter(t)
	token := loginToken(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "total_properties")
	assert.Contains(t, resp, "job_status_counts")
}

func TestAddJobAcceptsZeroFee(t *testing.T) {
	router := testRouter(t)
	token := loginToken(t, router)

	post := func(path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := post("/survey/clients", `{"name":"S. Wanjiku","telephone_number":"0755000001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = post(fmt.Sprintf("/survey/clients/%d/files", created.ID), `{"file_name":"FILE-001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// A pro-bono job carries no fee; binding must not reject it.
	rec = post("/survey/jobs", fmt.Sprintf(
		`{"file_id":%d,"title_name":"Wanjiku","title_number":"TN-001","fee":0}`, created.ID))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPropertyLifecycle(t *testing.T) {
	router := testRouter(t)
	token := loginToken(t, router)

	body := `{
		"property_type": "Block",
		"title_deed_number": "LR-1234",
		"location": "Westgate",
		"size": 10,
		"owner": "Estate Co",
		"telephone_number": "0700000001",
		"price": 1000000
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/properties", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/properties?search=Westgate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "LR-1234")
}
