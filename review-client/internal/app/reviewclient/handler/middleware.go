package handler

import (
	"net/http"
	"strings"

	"bookreviews/review-client/internal/app/reviewclient/entity"
	apiclient "bookreviews/review-client/internal/app/reviewclient/infrastructure/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims структура claims для JWT токена (выдается сервисом аутентификации)
type JWTClaims struct {
	UserID   string `json:"user_id"`
	RoleName string `json:"role_name"`
	jwt.RegisteredClaims
}

// ViewerMiddleware определяет зрителя по необязательному JWT токену
type ViewerMiddleware struct {
	jwtSecret string
}

func NewViewerMiddleware(jwtSecret string) *ViewerMiddleware {
	return &ViewerMiddleware{
		jwtSecret: jwtSecret,
	}
}

// IdentifyViewer без заголовка Authorization пропускает запрос как анонимный.
// Невалидный токен отклоняется. Валидный токен кладется в контекст запроса,
// чтобы клиенты API передали его дальше.
func (m *ViewerMiddleware) IdentifyViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Проверяем формат "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(m.jwtSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*JWTClaims)
		if !ok || claims.UserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role_name", claims.RoleName)
		c.Request = c.Request.WithContext(apiclient.WithAuthToken(c.Request.Context(), tokenString))

		c.Next()
	}
}

// RequireViewer пропускает только запросы с валидным токеном.
// Ставится после IdentifyViewer.
func (m *ViewerMiddleware) RequireViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") == "" {
			c.JSON(http.StatusUnauthorized, entity.ErrorResponse{
				Error:          "Sign in to continue",
				SignInRequired: true,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
