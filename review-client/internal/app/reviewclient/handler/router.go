package handler

import (
	"net/http"

	"bookreviews/pkg/logger"
	"bookreviews/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "review-client"

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	reviewHandler *ReviewHandler,
	bookHandler *BookHandler,
	sessionHandler *SessionHandler,
	viewerMiddleware *ViewerMiddleware,
	allowOrigins []string,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(viewerMiddleware.IdentifyViewer())
	{
		reviews := api.Group("/reviews")
		{
			reviews.GET("/:review_id", reviewHandler.GetReview)
			reviews.POST("/:review_id/like", reviewHandler.ToggleLike)
			reviews.PUT("/:review_id/like", reviewHandler.Like)
			reviews.DELETE("/:review_id/like", reviewHandler.Unlike)
		}

		books := api.Group("/books/olid")
		{
			books.GET("/:olid", bookHandler.OpenBook)
			books.POST("/:olid/reviews", bookHandler.AddReview)
			books.DELETE("/:olid/reviews", bookHandler.RemoveReview)
			books.POST("/:olid/reviews/new", viewerMiddleware.RequireViewer(), bookHandler.WriteReview)
		}

		// Сессия общая для процесса, поэтому без токена к ней доступа нет
		session := api.Group("/session")
		session.Use(viewerMiddleware.RequireViewer())
		{
			session.GET("", sessionHandler.GetSession)
			session.POST("", sessionHandler.SignIn)
			session.DELETE("", sessionHandler.SignOut)
		}
	}

	return router
}
