package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyago/config"
	"voyago/cron"
	"voyago/database"
	bookingRepo "voyago/database/repository/booking"
	catalogRepo "voyago/database/repository/catalog"
	paymentRepo "voyago/database/repository/payment"
	"voyago/handlers"
	"voyago/middleware"
	"voyago/routes"
	bookingSvc "voyago/services/booking"
	"voyago/services/notification"
	paymentSvc "voyago/services/payment"
	"voyago/services/tasks"
	"voyago/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := database.Connect(ctx, config.AppConfig.DatabaseURL)
	cancel()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to mongo: %v", err)
	}
	defer func() {
		if err := database.Disconnect(mongoClient); err != nil {
			logger.Sugar().Errorf("main: mongo disconnect: %v", err)
		}
	}()
	db := mongoClient.Database(config.AppConfig.DatabaseName)

	// Redis cache is optional; a miss just means catalog reads hit Mongo.
	cacheClient, err := utils.NewCacheClient(config.AppConfig.RedisAddr, config.AppConfig.RedisPassword, config.AppConfig.RedisCacheDB)
	if err != nil {
		logger.Sugar().Warnf("main: redis unavailable, running without item cache: %v", err)
		cacheClient = nil
	}

	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	catRepo := catalogRepo.NewMongoCatalogRepo(db, catalogRepo.NewItemCache(cacheClient))
	bkRepo, err := bookingRepo.NewMongoBookingRepo(db)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to prepare booking collections: %v", err)
	}
	payRepo, err := paymentRepo.NewMongoPaymentRepo(db)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to prepare payment collections: %v", err)
	}

	// notifications.
	var notifier notification.Service
	if brokers := config.KafkaBrokerList(); len(brokers) > 0 {
		kafkaNotifier, err := notification.NewKafkaNotifier(brokers, config.AppConfig.KafkaTopic, logger)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to connect kafka producer: %v", err)
		}
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
	} else {
		logger.Info("main: no kafka brokers configured, notifications will only be logged")
		notifier = &notification.LogNotifier{Logger: logger}
	}

	// services.
	availabilitySvc := &bookingSvc.AvailabilityService{Repo: bkRepo}
	pricingSvc := &bookingSvc.PricingService{
		Catalog: catRepo,
		TaxRate: config.AppConfig.TaxRate,
	}

	expiryScheduler := tasks.NewExpiryScheduler(config.AppConfig.RedisAddr, config.AppConfig.RedisPassword, config.AppConfig.RedisQueueDB)
	defer expiryScheduler.Close()

	bookingService := &bookingSvc.DefaultBookingService{
		Repo:         bkRepo,
		Availability: availabilitySvc,
		Pricing:      pricingSvc,
		Notifier:     notifier,
		Expiry:       expiryScheduler,
		PendingTTL:   time.Duration(config.AppConfig.PendingBookingTTL) * time.Minute,
		Logger:       logger,
	}

	paymentService := &paymentSvc.DefaultPaymentService{
		Payments:   payRepo,
		Bookings:   bkRepo,
		Gateway:    &paymentSvc.StripeGateway{},
		Notifier:   notifier,
		SuccessURL: config.AppConfig.CheckoutSuccessURL,
		CancelURL:  config.AppConfig.CheckoutCancelURL,
		Logger:     logger,
	}

	cron.InitExpiryWorker(config.AppConfig.RedisAddr, config.AppConfig.RedisPassword, config.AppConfig.RedisQueueDB, bkRepo, notifier, logger)
	utils.StartHealthMonitor(cacheClient, mongoClient)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	router.Use(middleware.OptionalIdentity(config.AppConfig.JWTSecret))

	handlerBundle := &handlers.HandlerBundle{
		Booking: handlers.NewBookingHandler(bookingService, availabilitySvc, pricingSvc, logger),
		Payment: handlers.NewPaymentHandler(paymentService, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
