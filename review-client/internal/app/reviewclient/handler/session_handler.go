package handler

import (
	"net/http"

	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type SessionHandler struct {
	sessionService service.SessionServiceInterface
	validator      *validator.Validate
}

func NewSessionHandler(sessionService service.SessionServiceInterface) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		validator:      validator.New(),
	}
}

// GetSession отдает текущего пользователя только его владельцу.
// Для остальных сессия выглядит пустой.
func (h *SessionHandler) GetSession(c *gin.Context) {
	current := h.sessionService.Current()
	if current.UserID != c.GetString("user_id") {
		c.JSON(http.StatusOK, entity.CurrentUserState{})
		return
	}

	c.JSON(http.StatusOK, current)
}

// SignIn делает владельца токена текущим пользователем.
// Пользователь из тела должен совпадать с владельцем токена.
func (h *SessionHandler) SignIn(c *gin.Context) {
	var req entity.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	viewerID := c.GetString("user_id")
	if viewerID == "" {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Sign in to continue", SignInRequired: true})
		return
	}
	if viewerID != req.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot sign in as another user"})
		return
	}

	current, err := h.sessionService.SignIn(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, current)
}

// SignOut завершает только собственную сессию
func (h *SessionHandler) SignOut(c *gin.Context) {
	current := h.sessionService.Current()
	if current.UserID != "" && current.UserID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot sign out another user"})
		return
	}

	if err := h.sessionService.SignOut(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}

	c.Status(http.StatusNoContent)
}
