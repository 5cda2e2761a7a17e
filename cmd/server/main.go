package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"market-hub.backend/internal/config"
	"market-hub.backend/internal/domain/entities"
	"market-hub.backend/internal/infrastructure/datasources/mongodb"
	"market-hub.backend/internal/infrastructure/email"
	"market-hub.backend/internal/infrastructure/jobs"
	"market-hub.backend/internal/infrastructure/repositories"
	"market-hub.backend/internal/interfaces/http/handlers"
	"market-hub.backend/internal/interfaces/http/middleware"
	"market-hub.backend/internal/interfaces/http/response"
	"market-hub.backend/internal/usecases"
	"market-hub.backend/pkg/jwt"
	"market-hub.backend/pkg/logger"
	"market-hub.backend/pkg/redis"
)

var (
	loadDotenv   = godotenv.Load
	loadCfg      = config.Load
	initLog      = logger.Init
	initRedis    = redis.Init
	connectMongo = mongodb.Connect
	migrateDB    = func(ctx context.Context, db *mongodb.Database) ([]string, error) {
		return db.Migrate(ctx)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	response.Init(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to MongoDB
	db, err := connectMongo(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	defer db.Disconnect(context.Background())
	log.Println("✅ Connected to MongoDB")

	if created, err := migrateDB(context.Background(), db); err != nil {
		log.Printf("⚠️ Index migration failed: %v (duplicate guards degraded)", err)
	} else if len(created) > 0 {
		log.Printf("📐 Ensured %d indexes", len(created))
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	reviewRequestRepo := repositories.NewReviewRequestRepository(db)
	payoutRepo := repositories.NewPayoutRepository(db)
	couponRepo := repositories.NewCouponRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	uow := repositories.NewMongoUnitOfWork(db)

	// Initialize outbound email
	mailer := email.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	mailService := email.NewService(mailer, cfg.Links.ClientURL, cfg.Links.APIURL, cfg.Links.SiteName)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	vendorUsecase := usecases.NewVendorUsecase(
		vendorRepo, userRepo, productRepo, payoutRepo, auditRepo, db, uow,
		jwtService, mailService,
		entities.CommissionType(cfg.Commission.DefaultType), cfg.Commission.DefaultValue,
	)
	productUsecase := usecases.NewProductUsecase(productRepo, vendorRepo, reviewRepo)
	orderUsecase := usecases.NewOrderUsecase(orderRepo, productRepo, vendorRepo, couponRepo, uow)
	notificationUsecase := usecases.NewNotificationUsecase(orderRepo, userRepo, mailService)
	reviewRequestUsecase := usecases.NewReviewRequestUsecase(reviewRequestRepo, reviewRepo, orderRepo, productRepo, userRepo, mailService)
	payoutUsecase := usecases.NewPayoutUsecase(payoutRepo, vendorRepo, uow)
	couponUsecase := usecases.NewCouponUsecase(couponRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	vendorHandler := handlers.NewVendorHandler(vendorUsecase)
	productHandler := handlers.NewProductHandler(productUsecase, vendorUsecase)
	orderHandler := handlers.NewOrderHandler(orderUsecase, vendorUsecase)
	notificationHandler := handlers.NewNotificationHandler(notificationUsecase)
	reviewRequestHandler := handlers.NewReviewRequestHandler(reviewRequestUsecase)
	payoutHandler := handlers.NewPayoutHandler(payoutUsecase, vendorUsecase)
	couponHandler := handlers.NewCouponHandler(couponUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewReviewRequestExpiryJob(reviewRequestRepo)
	go expiryJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:            authHandler,
		vendorHandler:          vendorHandler,
		productHandler:         productHandler,
		orderHandler:           orderHandler,
		notificationHandler:    notificationHandler,
		reviewRequestHandler:   reviewRequestHandler,
		payoutHandler:          payoutHandler,
		couponHandler:          couponHandler,
		authMiddleware:         middleware.AuthMiddleware(jwtService),
		optionalAuthMiddleware: middleware.OptionalAuthMiddleware(jwtService),
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		expiryJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Market Hub Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
