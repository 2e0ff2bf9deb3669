package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/educhain/educhain-web/config"
	"github.com/educhain/educhain-web/internal/educhain"
	"github.com/educhain/educhain-web/internal/handlers"
	"github.com/educhain/educhain-web/internal/middleware"
	"github.com/educhain/educhain-web/internal/otp"
	"github.com/educhain/educhain-web/internal/session"
	"github.com/educhain/educhain-web/pkg/httpclient"
	"github.com/educhain/educhain-web/pkg/logger"
	"github.com/educhain/educhain-web/pkg/metrics"
	"github.com/educhain/educhain-web/pkg/profiling"
	"github.com/educhain/educhain-web/pkg/sessiontoken"
	"github.com/educhain/educhain-web/pkg/tracing"
	"github.com/educhain/educhain-web/web"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting EduChain web",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (off unless configured)
	if cfg.Profiling.Enabled {
		profilerStop, err := profiling.Start(profiling.Options{
			Endpoint:       cfg.Profiling.Endpoint,
			AppName:        cfg.Profiling.AppName,
			SampleTypes:    strings.Split(cfg.Profiling.SampleTypes, ","),
			UploadInterval: time.Duration(cfg.Profiling.UploadIntervalSeconds) * time.Second,
			Tags: map[string]string{
				"service_name":    cfg.Observability.ServiceName,
				"namespace":       cfg.Observability.ServiceNamespace,
				"environment":     cfg.Server.AppEnv,
				"service_version": cfg.Observability.ServiceVersion,
				"instance":        cfg.Observability.ServiceInstanceID,
			},
		})
		if err != nil {
			logger.Error("Failed to start profiler", zap.Error(err))
		} else {
			defer profilerStop()
		}
	}

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Upstream EduChain API client
	httpClient := httpclient.NewStandardClientWithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second)
	apiClient, err := educhain.NewClient(cfg.API.BaseURL, httpClient)
	if err != nil {
		logger.Fatal("Failed to initialize EduChain API client", zap.Error(err))
	}

	// Session cookies and OTP resend throttling
	tokenManager := sessiontoken.NewManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTLHours)
	sessions := session.NewManager(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure)
	cooldown := otp.NewCooldown(time.Duration(cfg.OTP.ResendCooldownSeconds) * time.Second)

	handler := handlers.New(apiClient, sessions, cooldown)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	templates, err := web.Templates()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}
	router.SetHTMLTemplate(templates)

	static, err := web.Static()
	if err != nil {
		logger.Fatal("Failed to load static assets", zap.Error(err))
	}
	router.StaticFS("/static", http.FS(static))

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.Observability())
	router.Use(middleware.SecurityHeaders())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:"+cfg.Server.Port, "http://127.0.0.1:"+cfg.Server.Port)
	}
	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Tighter limit on auth endpoints against credential stuffing
	generalRateLimiter := middleware.NewRateLimiter(50, 100)
	authRateLimiter := middleware.NewRateLimiter(1, 5)

	router.Use(generalRateLimiter.Middleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterRoutes(router, authRateLimiter.Middleware())

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
