package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/quotewall/quotewall/internal/adapters/http/handlers"
	"github.com/quotewall/quotewall/internal/domain"
	"github.com/quotewall/quotewall/internal/mocks"
	"github.com/quotewall/quotewall/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockQuoteService, *mocks.MockIdentityVerifier) {
	t.Helper()

	service := mocks.NewMockQuoteService(t)
	verifier := mocks.NewMockIdentityVerifier(t)

	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		ServiceName:   "quotewall-test",
		Verifier:      verifier,
		QuoteHandler:  handlers.NewQuoteHandler(service),
		HealthHandler: handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("test", "", "")),
		Timeout:       DefaultRequestTimeout,
	})

	return engine, service, verifier
}

func serve(engine *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	return rec
}

func TestRouter_PreflightBypassesAuth(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	rec := serve(engine, http.MethodOptions, "/api/v1/quotes/update", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "authorization")
}

func TestRouter_WrongVerbGets405(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	rec := serve(engine, http.MethodDelete, "/api/v1/quotes/update", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
}

func TestRouter_UnknownRouteGets404(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	rec := serve(engine, http.MethodGet, "/api/v1/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestRouter_GalleryIsPublic(t *testing.T) {
	engine, service, _ := newTestRouter(t)
	service.On("ListQuotes", mock.Anything).Return([]domain.Quote{}, nil).Once()

	rec := serve(engine, http.MethodGet, "/api/v1/quotes", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UpdateRequiresToken(t *testing.T) {
	engine, _, verifier := newTestRouter(t)
	verifier.On("Verify", mock.Anything, "").
		Return(nil, domain.NewUnauthorizedError("missing bearer token")).Once()

	rec := serve(engine, http.MethodPost, "/api/v1/quotes/update", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized: Invalid or missing token"}`, rec.Body.String())
}

func TestRouter_HealthEndpointsRegistered(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/-/live", nil).Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/-/ready", nil).Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/-/build", nil).Code)
}
