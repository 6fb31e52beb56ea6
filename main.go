// File: fixfresh/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fixfresh/config"
	"fixfresh/database"
	earningsRepoPkg "fixfresh/database/repository/earnings"
	jobRepoPkg "fixfresh/database/repository/job"
	userRepoPkg "fixfresh/database/repository/user"
	"fixfresh/handlers"
	"fixfresh/middleware"
	"fixfresh/routes"
	"fixfresh/services/earnings"
	"fixfresh/services/job"
	"fixfresh/services/notification"
	"fixfresh/services/payment"
	"fixfresh/services/storage"
	"fixfresh/services/user"
	"fixfresh/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitEventsClient()

	cld, err := cloudinary.NewFromURL(config.AppConfig.CloudinaryURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(routes.CORSConfig())

	// repositories.
	jobRepo := jobRepoPkg.NewMongoJobRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	earningsRepo := earningsRepoPkg.NewMongoEarningsRepo()

	// services.
	notifier := notification.NewRedisNotificationService()
	userService := user.NewDefaultUserService(userRepo, 72*time.Hour, logger)
	jobService := job.NewDefaultJobService(jobRepo, notifier, logger)
	paymentService := payment.NewDefaultPaymentService(jobRepo, earningsRepo, notifier, config.AppConfig.CommissionRate, logger)
	earningsService := earnings.NewDefaultEarningsService(earningsRepo)
	storageService := storage.NewCloudinaryStorage(cld)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		Users:    userService,
		Jobs:     jobService,
		Payments: paymentService,
		Earnings: earningsService,
		Storage:  storageService,
		Events:   notifier,
		Logger:   logger,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterAll(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
