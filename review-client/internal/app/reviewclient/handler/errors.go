package handler

import (
	"errors"
	"net/http"

	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError переводит ошибку сервиса в HTTP ответ.
// Порядок важен: частичная неудача проверяется раньше классификации транспорта.
func respondError(c *gin.Context, err error) {
	resp := entity.ErrorResponse{Message: err.Error()}

	var assemblyErr *service.AssemblyError
	if errors.As(err, &assemblyErr) {
		resp.Dependency = assemblyErr.Dependency
	}

	status := http.StatusServiceUnavailable
	switch {
	case errors.Is(err, service.ErrPartialConsistency), errors.Is(err, service.ErrRefetchFailed):
		status = http.StatusConflict
		resp.Error = "Like state is out of sync, reload before retrying"
		resp.ResyncRequired = true
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
		resp.Error = "Sign in to continue"
		resp.SignInRequired = true
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		resp.Error = "Not found"
	default:
		resp.Error = "Temporarily unavailable"
	}

	c.JSON(status, resp)
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
