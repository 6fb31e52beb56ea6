package routes

import (
	"net/http"
	"time"

	"fixfresh/handlers"
	"fixfresh/middleware"
	"fixfresh/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and validation endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.MeHandler)
		api.POST("/validation", hb.SubmitValidationHandler)
	}
}

// RegisterAdminRoutes registers the back-office validation review
// endpoints, guarded by the admin API key.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AdminKeyMiddleware())
		api.GET("/validations", hb.ListValidationsHandler)
		api.PUT("/validations/:id", hb.ReviewValidationHandler)
	}
}

// RegisterJobRoutes sets up the endpoints for the job lifecycle engine.
func RegisterJobRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/jobs")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.CreateJobHandler)
		api.GET("", hb.ListJobsHandler)
		api.GET("/:id", hb.GetJobHandler)
		api.POST("/:id/accept", hb.AcceptJobHandler)
		api.PUT("/:id/status", hb.UpdateStatusHandler)
		api.POST("/:id/cancel", hb.CancelJobHandler)
		api.POST("/:id/rating", hb.RateJobHandler)
		api.POST("/:id/photos", hb.UploadJobPhotosHandler)
		api.GET("/:id/events", hb.StreamJobEventsHandler)
	}
}

// RegisterPaymentRoutes registers the gateway callback.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/confirm", hb.PaymentConfirmedHandler)
	}
}

// RegisterEarningsRoutes registers provider earnings reporting.
func RegisterEarningsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/earnings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.Use(middleware.RequireRole(models.RoleProvider, models.RoleAdmin))
		api.GET("/summary", hb.EarningsSummaryHandler)
		api.GET("", hb.ListEarningsHandler)
		api.POST("/withdrawals", hb.RequestWithdrawalHandler)
		api.GET("/withdrawals", hb.ListWithdrawalsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Fix & Fresh"})
	})
}

// CORSConfig returns the cross-origin policy for the API.
func CORSConfig() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// RegisterAll wires every route group.
func RegisterAll(r *gin.Engine, hb *handlers.HandlerBundle) {
	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterJobRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterEarningsRoutes(r, hb)
}
