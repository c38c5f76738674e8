package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"svdiagnostic/config"
	"svdiagnostic/database"
	"svdiagnostic/database/kv"
	"svdiagnostic/handlers"
	"svdiagnostic/middleware"
	"svdiagnostic/routes"
	"svdiagnostic/services/booking"
	ai "svdiagnostic/services/intelligence"
	"svdiagnostic/services/notification"
	"svdiagnostic/services/payment"
	"svdiagnostic/services/session"
	"svdiagnostic/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := newStore(logger)
	notifier := newNotifier(logger)
	gateway := newGateway(logger)
	advice, closeAdvice := newAdviceService(logger)
	defer closeAdvice()

	// services.
	sessions := session.NewManager(store, notifier, newIDGenerator(), logger)
	checkout := payment.NewCheckout(sessions, gateway, config.AppConfig.Currency, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewSessionHandler(sessions, checkout),
		handlers.NewCheckoutHandler(checkout),
		handlers.NewAdviceHandler(advice),
		handlers.NewViewHandler(sessions),
	)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.AllowedOrigins())

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
	if err := checkout.Close(ctx); err != nil {
		logger.Warn("main: pending payments did not finish", zap.Error(err))
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

func newStore(logger *zap.Logger) kv.Store {
	switch config.AppConfig.StoreDriver {
	case "redis":
		client, err := utils.GetStoreClient()
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		logger.Info("Device store: redis", zap.String("addr", config.AppConfig.RedisAddr))
		return kv.NewRedisStore(client)
	case "mongo":
		if err := database.InitDB(); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		logger.Info("Device store: mongo", zap.String("database", config.AppConfig.DatabaseName))
		return kv.NewMongoStore(database.Database())
	case "memory", "":
		logger.Warn("Device store: memory, state is lost on restart")
		return kv.NewMemoryStore()
	default:
		logger.Sugar().Fatalf("main: unknown STORE_DRIVER %q", config.AppConfig.StoreDriver)
		return nil
	}
}

func newIDGenerator() booking.IDGenerator {
	if config.AppConfig.BookingIDScheme == "legacy" {
		return booking.LegacyGenerator{}
	}
	return booking.UUIDGenerator{}
}

func newNotifier(logger *zap.Logger) notification.Notifier {
	if config.AppConfig.Notifier != "fcm" {
		return notification.NewLogNotifier(logger)
	}
	client, err := notification.NewFCMClient(context.Background(), config.AppConfig.FirebaseCredentials)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	return notification.NewFCMNotifier(client, logger)
}

func newGateway(logger *zap.Logger) payment.Gateway {
	if config.AppConfig.PaymentGateway != "stripe" {
		delay := time.Duration(config.AppConfig.PaymentDelayMS) * time.Millisecond
		return payment.NewSimulatedGateway(delay, logger)
	}
	stripe.Key = config.AppConfig.StripeKey
	return payment.NewStripeGateway(config.AppConfig.StripePaymentMethod, logger)
}

func newAdviceService(logger *zap.Logger) (*ai.AdviceService, func()) {
	var cache ai.Cache
	if config.AppConfig.StoreDriver == "redis" {
		if client, err := utils.GetStoreClient(); err == nil {
			cache = ai.NewRedisCache(client, config.AppConfig.AdviceCacheTTL)
		}
	}

	if config.AppConfig.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, advice requests will get the fallback answer")
		return ai.NewAdviceService(ai.UnavailableGenerator{}, cache, logger), func() {}
	}
	gemini, err := ai.NewGeminiClient(context.Background(), config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	return ai.NewAdviceService(gemini, cache, logger), func() { _ = gemini.Close() }
}
