package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newBookRouter(svc *MockBookService) *gin.Engine {
	h := NewBookHandler(svc)
	router := gin.New()
	router.GET("/books/olid/:olid", h.OpenBook)
	router.POST("/books/olid/:olid/reviews", h.AddReview)
	router.DELETE("/books/olid/:olid/reviews", h.RemoveReview)
	return router
}

func TestOpenBookHandler_Success(t *testing.T) {
	svc := new(MockBookService)
	svc.On("OpenBook", mock.Anything, "OL1W").Return(&entity.Book{ID: "b1", OLID: "OL1W"}, nil)
	router := newBookRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books/olid/OL1W", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"olid":"OL1W"`)
}

func TestOpenBookHandler_Unavailable(t *testing.T) {
	svc := new(MockBookService)
	svc.On("OpenBook", mock.Anything, "OL1W").Return(nil, fmt.Errorf("failed to find book: %w", service.ErrTransportFailure))
	router := newBookRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books/olid/OL1W", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAddReviewHandler_Success(t *testing.T) {
	// Arrange
	svc := new(MockBookService)
	svc.On("AddReview", mock.Anything, "OL1W", "r1").Return(&entity.Book{ID: "b1", OLID: "OL1W", Reviews: []string{"r1"}}, nil)
	router := newBookRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/books/olid/OL1W/reviews", bytes.NewBufferString(`{"reviewID":"r1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestAddReviewHandler_ValidationError(t *testing.T) {
	svc := new(MockBookService)
	router := newBookRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/books/olid/OL1W/reviews", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ReviewID is required")
	svc.AssertNotCalled(t, "AddReview", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddReviewHandler_InvalidJSON(t *testing.T) {
	svc := new(MockBookService)
	router := newBookRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/books/olid/OL1W/reviews", bytes.NewBufferString(`{broken`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveReviewHandler_NotFound(t *testing.T) {
	svc := new(MockBookService)
	svc.On("RemoveReview", mock.Anything, "OL1W", "r1").Return(nil, fmt.Errorf("failed to remove review: %w", service.ErrNotFound))
	router := newBookRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/books/olid/OL1W/reviews", bytes.NewBufferString(`{"reviewID":"r1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func newWriteReviewRouter(svc *MockBookService, viewerID string) *gin.Engine {
	h := NewBookHandler(svc)
	router := gin.New()
	router.POST("/books/olid/:olid/reviews/new", func(c *gin.Context) {
		c.Set("user_id", viewerID)
		c.Next()
	}, h.WriteReview)
	return router
}

func TestWriteReviewHandler_Created(t *testing.T) {
	// Arrange
	svc := new(MockBookService)
	req := &entity.WriteReviewRequest{Title: "Great", Body: "Loved it", Tags: []string{"classic"}}
	svc.On("WriteReview", mock.Anything, "OL1W", "a1", req).Return(&entity.WriteReviewResult{
		Review: &entity.Review{ID: "r9"},
		Book:   &entity.Book{ID: "b1", OLID: "OL1W", Reviews: []string{"r9"}},
	}, nil)
	router := newWriteReviewRouter(svc, "a1")

	httpReq := httptest.NewRequest(http.MethodPost, "/books/olid/OL1W/reviews/new",
		bytes.NewBufferString(`{"title":"Great","body":"Loved it","tags":["classic"]}`))
	httpReq.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, httpReq)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"r9"`)
	svc.AssertExpectations(t)
}

func TestWriteReviewHandler_ValidationError(t *testing.T) {
	svc := new(MockBookService)
	router := newWriteReviewRouter(svc, "a1")

	httpReq := httptest.NewRequest(http.MethodPost, "/books/olid/OL1W/reviews/new", bytes.NewBufferString(`{"title":"","body":"b"}`))
	httpReq.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "WriteReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
