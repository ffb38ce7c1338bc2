package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barberflow/internal/caching"
	"barberflow/internal/common"
	"barberflow/internal/config"
	"barberflow/internal/handlers"
	"barberflow/internal/jobs/background"
	appmiddleware "barberflow/internal/middleware"
	"barberflow/internal/models"
	"barberflow/internal/repositories"
	"barberflow/internal/services"
	"barberflow/pkg/database"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const loginRateLimit = 10

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	storageSvc, err := services.NewMinioStorageService(
		cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL, cfg.MinioBucket,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}
	if err := storageSvc.EnsureBucket(ctx); err != nil {
		log.Warn().Err(err).Msg("could not ensure photo bucket, uploads may fail")
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	orgRepo := repositories.NewOrganizationRepo(pool)
	customerRepo := repositories.NewCustomerRepo(pool)
	serviceRepo := repositories.NewServiceRepo(pool)
	professionalRepo := repositories.NewProfessionalRepo(pool)
	appointmentRepo := repositories.NewAppointmentRepo(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, orgRepo, cfg.JWTSecret, cfg.TokenTTL)
	customerSvc := services.NewCustomerService(customerRepo)
	catalogSvc := services.NewCatalogService(serviceRepo, cacheSvc)
	professionalSvc := services.NewProfessionalService(professionalRepo, storageSvc)
	appointmentSvc := services.NewAppointmentService(appointmentRepo, serviceRepo, professionalRepo, customerRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	customerHandlers := handlers.NewCustomerHandlers(customerSvc)
	serviceHandlers := handlers.NewServiceHandlers(catalogSvc)
	professionalHandlers := handlers.NewProfessionalHandlers(professionalSvc)
	appointmentHandlers := handlers.NewAppointmentHandlers(appointmentSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	scheduler, err := background.NewJobScheduler(orgRepo, appointmentRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create job scheduler")
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Warn().Err(err).Msg("scheduler shutdown failed")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))

	e.GET("/health", healthHandlers.Live)
	e.GET("/health/ready", healthHandlers.Ready)

	auth := e.Group("/auth")
	auth.POST("/login", authHandlers.Login, appmiddleware.LoginRateLimit(cacheSvc, loginRateLimit, time.Minute))
	auth.POST("/register", authHandlers.Register)

	newClaims := authSvc.Claims()
	api := e.Group("")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    authSvc.SigningKey(),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return newClaims() },
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, common.MsgInvalidToken)
		},
	}))
	api.Use(appmiddleware.ClaimsToContext())

	api.GET("/me", authHandlers.Me)

	api.GET("/customers", customerHandlers.ListCustomers)
	api.POST("/customers", customerHandlers.CreateCustomer)
	api.PUT("/customers/:id", customerHandlers.UpdateCustomer)
	api.DELETE("/customers/:id", customerHandlers.DeleteCustomer)

	adminOnly := appmiddleware.RequireRole(models.RoleAdmin)

	api.GET("/services", serviceHandlers.ListServices)
	api.POST("/services", serviceHandlers.CreateService, adminOnly)
	api.PUT("/services/:id", serviceHandlers.UpdateService, adminOnly)
	api.DELETE("/services/:id", serviceHandlers.DeleteService, adminOnly)

	api.GET("/professionals", professionalHandlers.ListProfessionals)
	api.POST("/professionals", professionalHandlers.CreateProfessional, adminOnly)
	api.PUT("/professionals/:id", professionalHandlers.UpdateProfessional, adminOnly)
	api.DELETE("/professionals/:id", professionalHandlers.DeleteProfessional, adminOnly)
	api.GET("/professionals/:id/working-hours", professionalHandlers.GetWorkingHours)
	api.PUT("/professionals/:id/working-hours", professionalHandlers.ReplaceWorkingHours, adminOnly)
	api.GET("/professionals/:id/services", professionalHandlers.ListServiceLinks)
	api.PUT("/professionals/:id/services", professionalHandlers.ReplaceServiceLinks, adminOnly)
	api.POST("/professionals/:id/photo", professionalHandlers.UploadPhoto, adminOnly)

	api.GET("/appointments", appointmentHandlers.ListAppointments)
	api.POST("/appointments", appointmentHandlers.CreateAppointment)
	api.PATCH("/appointments/:id/status", appointmentHandlers.ChangeStatus)

	api.GET("/dashboard/summary", appointmentHandlers.DashboardSummary)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
