package handler

import (
	"net/http"

	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type BookHandler struct {
	bookService service.BookServiceInterface
	validator   *validator.Validate
}

func NewBookHandler(bookService service.BookServiceInterface) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		validator:   validator.New(),
	}
}

// OpenBook находит или создает книгу по Open Library ID
func (h *BookHandler) OpenBook(c *gin.Context) {
	olid := c.Param("olid")
	if olid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OLID is required"})
		return
	}

	book, err := h.bookService.OpenBook(c.Request.Context(), olid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) AddReview(c *gin.Context) {
	olid, req, ok := h.bindReviewRequest(c)
	if !ok {
		return
	}

	book, err := h.bookService.AddReview(c.Request.Context(), olid, req.ReviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) RemoveReview(c *gin.Context) {
	olid, req, ok := h.bindReviewRequest(c)
	if !ok {
		return
	}

	book, err := h.bookService.RemoveReview(c.Request.Context(), olid, req.ReviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// WriteReview создает отзыв зрителя к книге. Маршрут закрыт RequireViewer.
func (h *BookHandler) WriteReview(c *gin.Context) {
	olid := c.Param("olid")
	if olid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OLID is required"})
		return
	}

	var req entity.WriteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	result, err := h.bookService.WriteReview(c.Request.Context(), olid, c.GetString("user_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *BookHandler) bindReviewRequest(c *gin.Context) (string, *entity.BookReviewRequest, bool) {
	olid := c.Param("olid")
	if olid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OLID is required"})
		return "", nil, false
	}

	var req entity.BookReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return "", nil, false
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return "", nil, false
	}

	return olid, &req, true
}
