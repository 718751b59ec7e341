package handler

import (
	"net/http"

	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	pageService service.ReviewPageServiceInterface
}

func NewReviewHandler(pageService service.ReviewPageServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		pageService: pageService,
	}
}

// GetReview возвращает собранную страницу отзыва
func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID := c.Param("review_id")
	if reviewID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review ID is required"})
		return
	}

	view, err := h.pageService.GetReviewPage(c.Request.Context(), reviewID, c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ToggleLike переключает лайк зрителя (POST)
func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	h.like(c, func(reviewID, viewerID string) (*entity.ReviewView, error) {
		return h.pageService.ToggleLike(c.Request.Context(), reviewID, viewerID)
	})
}

// Like ставит лайк (PUT), повтор ничего не меняет
func (h *ReviewHandler) Like(c *gin.Context) {
	h.like(c, func(reviewID, viewerID string) (*entity.ReviewView, error) {
		return h.pageService.SetLike(c.Request.Context(), reviewID, viewerID, true)
	})
}

// Unlike снимает лайк (DELETE)
func (h *ReviewHandler) Unlike(c *gin.Context) {
	h.like(c, func(reviewID, viewerID string) (*entity.ReviewView, error) {
		return h.pageService.SetLike(c.Request.Context(), reviewID, viewerID, false)
	})
}

func (h *ReviewHandler) like(c *gin.Context, action func(reviewID, viewerID string) (*entity.ReviewView, error)) {
	reviewID := c.Param("review_id")
	if reviewID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review ID is required"})
		return
	}

	// Анонимный зритель доходит до сервиса и получает запрос на вход
	view, err := action(reviewID, c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
