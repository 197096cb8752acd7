// Package main Bookstore API
//
// Online bookstore backend: catalog, cart, order placement and
// VNPay payment confirmation.
//
//	@title			Bookstore API
//	@version		1.0
//	@description	Online bookstore with catalog, cart, order placement and VNPay payment confirmation
//
//	@contact.name	API Support
//	@contact.email	support@example.com
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//	@schemes	http https
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bookstore/docs/swagger"
	authadapters "bookstore/internal/auth/adapters"
	authapp "bookstore/internal/auth/application"
	authhttp "bookstore/internal/auth/infrastructure"
	cartadapters "bookstore/internal/cart/adapters"
	cartapp "bookstore/internal/cart/application"
	carthttp "bookstore/internal/cart/infrastructure"
	catalogadapters "bookstore/internal/catalog/adapters"
	catalogapp "bookstore/internal/catalog/application"
	cataloghttp "bookstore/internal/catalog/infrastructure"
	ordersadapters "bookstore/internal/orders/adapters"
	ordersapp "bookstore/internal/orders/application"
	ordershttp "bookstore/internal/orders/infrastructure"
	ordersports "bookstore/internal/orders/ports"
	paymentadapters "bookstore/internal/payment/adapters"
	paymentapp "bookstore/internal/payment/application"
	paymenthttp "bookstore/internal/payment/infrastructure"
	paymentports "bookstore/internal/payment/ports"
	"bookstore/pkg/config"
	"bookstore/pkg/db"
	"bookstore/pkg/events"
	"bookstore/pkg/logger"
	"bookstore/pkg/middleware"
	"bookstore/pkg/rabbitmq"
	pkgtls "bookstore/pkg/tls"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	log.Info("starting bookstore service")

	// Connect to database
	dbConn, err := db.NewConnection(db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Timeout:  cfg.DBTimeout,
	})
	if err != nil {
		log.Fatal("failed to connect to database: " + err.Error())
	}
	log.Info("connected to database")

	// Initialize repositories and run migrations
	catalogRepo := catalogadapters.NewPostgresCatalogRepository(dbConn)
	authRepo := authadapters.NewPostgresAuthRepository(dbConn)
	cartRepo := cartadapters.NewPostgresCartRepository(dbConn)
	orderRepo := ordersadapters.NewPostgresOrderRepository(dbConn)

	migrators := []interface{ Migrate() error }{catalogRepo, authRepo, cartRepo, orderRepo}
	for _, m := range migrators {
		if err := m.Migrate(); err != nil {
			log.Fatal("failed to migrate database: " + err.Error())
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to RabbitMQ (optional, events are disabled without it)
	var ordersPublisher ordersports.EventPublisher
	var paymentPublisher paymentports.EventPublisher
	var rabbitConn *rabbitmq.Connection

	rabbitConn, err = rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Warn("failed to connect to RabbitMQ, events will be disabled: " + err.Error())
		rabbitConn = nil
	} else {
		defer rabbitConn.Close()

		if pub, err := rabbitmq.NewPublisher(rabbitConn, events.ExchangeOrders, log); err != nil {
			log.Warn("failed to create orders publisher: " + err.Error())
		} else {
			ordersPublisher = ordersadapters.NewRabbitMQPublisher(pub, log)
		}

		if pub, err := rabbitmq.NewPublisher(rabbitConn, events.ExchangePayments, log); err != nil {
			log.Warn("failed to create payments publisher: " + err.Error())
		} else {
			paymentPublisher = paymentadapters.NewRabbitMQPublisher(pub, log)
		}
	}

	// Initialize use cases
	catalogUseCase := catalogapp.NewCatalogUseCase(catalogRepo, catalogRepo.CategoryRepo(), log)
	authUseCase := authapp.NewAuthUseCase(authRepo, authRepo.SessionRepo(), cfg.SessionTTL, log)
	cartUseCase := cartapp.NewCartUseCase(cartRepo, cartadapters.NewCatalogClient(catalogUseCase), log)
	orderUseCase := ordersapp.NewOrderUseCase(
		orderRepo,
		ordersadapters.NewCatalogClient(catalogUseCase),
		ordersPublisher,
		cfg.ShippingFlatFee,
		log,
	)
	paymentUseCase := paymentapp.NewPaymentUseCase(
		paymentadapters.NewPostgresOrderGateway(dbConn),
		paymentPublisher,
		cfg.VNPayHashSecret,
		cfg.BaseURL,
		log,
	)

	// Advance fulfillment when payment confirmations arrive
	if rabbitConn != nil {
		consumer, err := ordersadapters.NewPaymentSucceededConsumer(rabbitConn, orderUseCase, log)
		if err != nil {
			log.Warn("failed to create payment consumer: " + err.Error())
		} else if err := consumer.Start(ctx); err != nil {
			log.Warn("failed to start payment consumer: " + err.Error())
		}
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS())
	router.Use(middleware.Auth(authUseCase))

	// Register API routes
	api := router.Group("/api/v1")
	admin := api.Group("/admin", middleware.RequireAdmin())

	cataloghttp.NewHTTPHandler(catalogUseCase).RegisterRoutes(api, admin)
	authhttp.NewHTTPHandler(authUseCase).RegisterRoutes(api)
	carthttp.NewHTTPHandler(cartUseCase).RegisterRoutes(api)
	ordershttp.NewHTTPHandler(orderUseCase).RegisterRoutes(api)
	paymenthttp.NewHTTPHandler(paymentUseCase).RegisterRoutes(api)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Root redirect to Swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/swagger/index.html")
	})

	// Start server
	if cfg.TLSEnabled {
		startHTTPSServer(cfg, log, router, ctx)
	} else {
		startHTTPServer(cfg, log, router, ctx)
	}
}

func startHTTPServer(cfg *config.Config, log *logger.Logger, router *gin.Engine, ctx context.Context) {
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	go func() {
		log.Info("HTTP server listening on http://localhost:" + cfg.HTTPPort)
		log.Info("Swagger UI: http://localhost:" + cfg.HTTPPort + "/swagger/index.html")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: " + err.Error())
		}
	}()

	waitForShutdown(server, log, ctx)
}

func startHTTPSServer(cfg *config.Config, log *logger.Logger, router *gin.Engine, ctx context.Context) {
	tlsConfig, err := pkgtls.ServerConfig(cfg.TLSCertFile, cfg.TLSKeyFile)
	if err != nil {
		log.Fatal("failed to load TLS config: " + err.Error())
	}

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		TLSConfig:    tlsConfig,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	go func() {
		log.Info("HTTPS server listening on https://localhost:" + cfg.HTTPPort)
		log.Info("Swagger UI: https://localhost:" + cfg.HTTPPort + "/swagger/index.html")
		if err := server.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTPS server error: " + err.Error())
		}
	}()

	waitForShutdown(server, log, ctx)
}

func waitForShutdown(server *http.Server, log *logger.Logger, ctx context.Context) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error: " + err.Error())
	}

	log.Info("server stopped")
}
