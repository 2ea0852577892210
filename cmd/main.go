package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"coffeeshop/api/handler"
	apiMiddleware "coffeeshop/api/middleware"
	"coffeeshop/api/routes"
	"coffeeshop/config"
	"coffeeshop/internal/repository"
	"coffeeshop/internal/service"
	"coffeeshop/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}

	validate := validator.New()

	jwtManager := utils.JWTManager{
		Secret:          cfg.JWTSecret,
		Issuer:          cfg.JWTIssuer,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}

	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	var mailer service.CodeMailer
	if resendMailer := service.NewResendCodeMailer(cfg.ResendAPIKey, cfg.EmailFrom); resendMailer.Configured() {
		mailer = resendMailer
	} else {
		logger.Warn("RESEND_API_KEY/EMAIL_FROM not set, verification codes will only be logged")
	}

	authService := service.NewAuthService(
		userRepo,
		auditRepo,
		mailer,
		service.BcryptPasswordHasher{},
		service.JWTTokenIssuer{Manager: &jwtManager},
		service.RealClock{},
		logger,
		service.AuthConfig{
			AccessTokenTTL:      cfg.AccessTokenTTL,
			RefreshTokenTTL:     cfg.RefreshTokenTTL,
			VerificationCodeTTL: cfg.VerificationCodeTTL,
		},
	)
	userService := service.NewUserService(userRepo)
	cleanupService := service.NewCleanupService(userRepo, auditRepo, service.RealClock{}, cfg.UnverifiedDeleteDays)

	go runCleanupScheduler(cleanupService, cfg.CleanupInterval, logger)

	authHandler := handler.NewAuthHandler(authService, validate)
	userHandler := handler.NewUserHandler(userService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager}
	router := routes.NewRouter(app, authHandler, userHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

// runCleanupScheduler triggers the unverified-account sweep on a fixed
// interval. A failed run is retried on the next tick, nothing sooner.
func runCleanupScheduler(cleanup *service.CleanupService, interval time.Duration, logger *logrus.Logger) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		deleted, err := cleanup.Run(ctx)
		cancel()
		if err != nil {
			logger.WithError(err).Error("cleanup sweep failed")
			continue
		}
		logger.WithField("deleted", deleted).Info("cleanup sweep finished")
	}
}
