package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quotewall/quotewall/internal/adapters/http/middleware"
	"github.com/quotewall/quotewall/internal/domain"
	"github.com/quotewall/quotewall/internal/mocks"
	"github.com/quotewall/quotewall/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var handlerIdentity = &ports.Identity{UserID: "user-1", Email: "one@example.com"}

// injectIdentity stands in for the auth middleware in handler tests.
func injectIdentity(identity *ports.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity != nil {
			c.Set(middleware.ContextKeyIdentity, identity)
		}
		c.Next()
	}
}

func newQuoteEngine(service ports.QuoteService, identity *ports.Identity) *gin.Engine {
	engine := gin.New()
	engine.Use(injectIdentity(identity))

	handler := NewQuoteHandler(service)
	engine.POST("/quotes/update", handler.Update)
	engine.PUT("/quotes/update", handler.Update)
	engine.POST("/quotes", handler.Create)
	engine.GET("/quotes", handler.List)
	engine.GET("/quotes/mine", handler.ListMine)
	engine.GET("/quotes/:id", handler.Get)
	engine.DELETE("/quotes/:id", handler.Delete)

	return engine
}

func doJSON(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	return rec
}

func TestNewQuoteHandler_PanicsWithoutService(t *testing.T) {
	assert.Panics(t, func() { NewQuoteHandler(nil) })
}

func TestUpdate_Success(t *testing.T) {
	service := mocks.NewMockQuoteService(t)

	updated := &domain.Quote{
		ID:         "q-1",
		QuoteText:  "Edited text of the quote.",
		AuthorName: "Ada Lovelace",
		UserID:     "user-1",
		UpdatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	service.On("AllowUpdate", mock.Anything, handlerIdentity).Return(nil).Once()
	service.On("UpdateQuote", mock.Anything, handlerIdentity,
		"q-1", "Edited text of the quote.", "Ada Lovelace").
		Return(updated, nil).Once()

	engine := newQuoteEngine(service, handlerIdentity)

	rec := doJSON(engine, http.MethodPost, "/quotes/update",
		`{"quote_id":"q-1","quote_text":"Edited text of the quote.","author_name":"Ada Lovelace"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "Quote updated successfully!")
	assert.Contains(t, rec.Body.String(), `"quote_text":"Edited text of the quote."`)
}

func TestUpdate_AcceptsPut(t *testing.T) {
	service := mocks.NewMockQuoteService(t)
	service.On("AllowUpdate", mock.Anything, handlerIdentity).Return(nil).Once()
	service.On("UpdateQuote", mock.Anything, handlerIdentity,
		"q-1", "Edited text of the quote.", "").
		Return(&domain.Quote{ID: "q-1"}, nil).Once()

	engine := newQuoteEngine(service, handlerIdentity)

	rec := doJSON(engine, http.MethodPut, "/quotes/update",
		`{"quote_id":"q-1","quote_text":"Edited text of the quote."}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdate_InvalidJSON(t *testing.T) {
	// A malformed body still consumes quota: AllowUpdate runs first.
	service := mocks.NewMockQuoteService(t)
	service.On("AllowUpdate", mock.Anything, handlerIdentity).Return(nil).Once()

	engine := newQuoteEngine(service, handlerIdentity)

	rec := doJSON(engine, http.MethodPost, "/quotes/update", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON in request body"}`, rec.Body.String())
	service.AssertNotCalled(t, "UpdateQuote",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_RateLimitCheckedBeforeBodyParse(t *testing.T) {
	// An over-quota caller gets 429 even when the body would not parse;
	// the body is never decoded for a denied call.
	service := mocks.NewMockQuoteService(t)
	service.On("AllowUpdate", mock.Anything, handlerIdentity).
		Return(domain.ErrRateLimited).Once()

	engine := newQuoteEngine(service, handlerIdentity)

	rec := doJSON(engine, http.MethodPost, "/quotes/update", `{not json`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Rate limit exceeded. Please try again later."}`, rec.Body.String())
	service.AssertNotCalled(t, "UpdateQuote",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_TrailingDataRejected(t *testing.T) {
	// A valid JSON value followed by anything else is not a valid body.
	service := mocks.NewMockQuoteService(t)
	service.On("AllowUpdate", mock.Anything, handlerIdentity).Return(nil).Once()

	engine := newQuoteEngine(service, handlerIdentity)

	rec := doJSON(engine, http.MethodPost, "/quotes/update",
		`{"quote_id":"q-1","quote_text":"Edited text of the quote."}garbage`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON in request body"}`, rec.Body.String())
	service.AssertNotCalled(t, "UpdateQuote",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_NonStringFieldsCoerceToEmpty(t *testing.T) {
	// A numeric quote_id must read as missing, not as a decode failure.
	service := mocks.NewMockQuoteService(t)
	service.On("AllowUpdate", mock.Anything, handlerIdentity).Return(nil).Once()
	service.On("UpdateQuote", mock.Anything, handlerIdentity, "", "valid text here", "").
		Return(nil, domain.NewValidationError("quote_id", "Quote ID is required")).Once()

	engine := newQuoteEngine(service, handlerIdentity)

	rec := doJSON(engine, http.MethodPost, "/quotes/update",
		`{"quote_id":123,"quote_text":"valid text here","author_name":42}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Quote ID is required"}`, rec.Body.String())
}

func TestUpdate_NoIdentity(t *testing.T) {
	service := mocks.NewMockQuoteService(t)
	engine := newQuoteEngine(service, nil)

	rec := doJSON(engine, http.MethodPost, "/quotes/update",
		`{"quote_id":"q-1","quote_text":"Edited text of the quote."}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized: Invalid or missing token"}`, rec.Body.String())
}

func TestUpdate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        domain.NewValidationError("quote_text", "Quote must be at least 10 characters long"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Quote must be at least 10 characters long"}`,
		},
		{
			name:       "not owned or missing",
			err:        domain.ErrQuoteNotAccessible,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Quote not found or you do not have permission to edit it"}`,
		},
		{
			name:       "internal with safe message",
			err:        domain.NewInternalError("Failed to update quote in database", errors.New("disk full")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to update quote in database"}`,
		},
		{
			name:       "unknown error stays generic",
			err:        errors.New("driver: bad connection"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service := mocks.NewMockQuoteService(t)
			service.On("AllowUpdate", mock.Anything, handlerIdentity).Return(nil).Once()
			service.On("UpdateQuote", mock.Anything, handlerIdentity,
				"q-1", "Edited text of the quote.", "").
				Return(nil, tc.err).Once()

			engine := newQuoteEngine(service, handlerIdentity)

			rec := doJSON(engine, http.MethodPost, "/quotes/update",
				`{"quote_id":"q-1","quote_text":"Edited text of the quote."}`)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := mocks.NewMockQuoteService(t)
		service.On("CreateQuote", mock.Anything, handlerIdentity, "A brand new quote.", "").
			Return(&domain.Quote{ID: "q-new", QuoteText: "A brand new quote.", AuthorName: "Unknown"}, nil).Once()

		engine := newQuoteEngine(service, handlerIdentity)

		rec := doJSON(engine, http.MethodPost, "/quotes", `{"quote_text":"A brand new quote."}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "Quote created successfully!")
		assert.Contains(t, rec.Body.String(), `"author_name":"Unknown"`)
	})

	t.Run("invalid json", func(t *testing.T) {
		service := mocks.NewMockQuoteService(t)
		engine := newQuoteEngine(service, handlerIdentity)

		rec := doJSON(engine, http.MethodPost, "/quotes", `not json at all`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid JSON in request body"}`, rec.Body.String())
	})

	t.Run("trailing data rejected", func(t *testing.T) {
		service := mocks.NewMockQuoteService(t)
		engine := newQuoteEngine(service, handlerIdentity)

		rec := doJSON(engine, http.MethodPost, "/quotes", `{"quote_text":"A brand new quote."}{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid JSON in request body"}`, rec.Body.String())
		service.AssertNotCalled(t, "CreateQuote",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no identity", func(t *testing.T) {
		service := mocks.NewMockQuoteService(t)
		engine := newQuoteEngine(service, nil)

		rec := doJSON(engine, http.MethodPost, "/quotes", `{"quote_text":"A brand new quote."}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestList(t *testing.T) {
	service := mocks.NewMockQuoteService(t)
	service.On("ListQuotes", mock.Anything).
		Return([]domain.Quote{{ID: "q-2"}, {ID: "q-1"}}, nil).Once()

	engine := newQuoteEngine(service, nil)

	rec := doJSON(engine, http.MethodGet, "/quotes", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quotes":[`)
	assert.Contains(t, rec.Body.String(), `"id":"q-2"`)
}

func TestListMine(t *testing.T) {
	service := mocks.NewMockQuoteService(t)
	service.On("ListMyQuotes", mock.Anything, handlerIdentity).
		Return([]domain.Quote{{ID: "q-1", UserID: "user-1"}}, nil).Once()

	engine := newQuoteEngine(service, handlerIdentity)

	rec := doJSON(engine, http.MethodGet, "/quotes/mine", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"q-1"`)
}

func TestGet(t *testing.T) {
	t.Run("detail includes escaped display fields", func(t *testing.T) {
		service := mocks.NewMockQuoteService(t)
		service.On("GetQuote", mock.Anything, "q-1").
			Return(&domain.Quote{ID: "q-1", QuoteText: "a < b", AuthorName: "Unknown"}, nil).Once()

		engine := newQuoteEngine(service, nil)

		rec := doJSON(engine, http.MethodGet, "/quotes/q-1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"display_text":"a &lt; b"`)
	})

	t.Run("not found", func(t *testing.T) {
		service := mocks.NewMockQuoteService(t)
		service.On("GetQuote", mock.Anything, "missing").
			Return(nil, domain.NewNotFoundError("quote", "missing")).Once()

		engine := newQuoteEngine(service, nil)

		rec := doJSON(engine, http.MethodGet, "/quotes/missing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := mocks.NewMockQuoteService(t)
		service.On("DeleteQuote", mock.Anything, handlerIdentity, "q-1").Return(nil).Once()

		engine := newQuoteEngine(service, handlerIdentity)

		rec := doJSON(engine, http.MethodDelete, "/quotes/q-1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Quote deleted successfully!")
	})

	t.Run("not owned maps to merged 404", func(t *testing.T) {
		service := mocks.NewMockQuoteService(t)
		service.On("DeleteQuote", mock.Anything, handlerIdentity, "q-1").
			Return(domain.ErrQuoteNotAccessible).Once()

		engine := newQuoteEngine(service, handlerIdentity)

		rec := doJSON(engine, http.MethodDelete, "/quotes/q-1", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Quote not found or you do not have permission to edit it"}`,
			rec.Body.String())
	})
}
