package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"vet-appointments/internal/config"
	"vet-appointments/internal/database"
	"vet-appointments/internal/handler"
	"vet-appointments/internal/logger"
	"vet-appointments/internal/repository"
	"vet-appointments/internal/router"
	"vet-appointments/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg.Log)
	log.Info("Configuration loaded successfully")

	// 2. Apply schema migrations when enabled
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database, log); err != nil {
			log.WithError(err).Fatal("Failed to run migrations")
		}
	}

	// 3. Initialize database pool. A failed warm-up is retried on first use.
	pool := database.New(cfg.Database, log)
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := pool.Connect(warmCtx); err != nil {
		log.WithError(err).Warn("Database not reachable at startup, will retry on first request")
	}
	warmCancel()

	// 4. Initialize repositories
	appointmentRepo := repository.NewAppointmentRepo(pool)
	auditRepo := repository.NewAuditRepo(pool)

	// 5. Initialize services
	appointmentService := service.NewAppointmentService(appointmentRepo, auditRepo, log,
		service.WithLocation(cfg.Clinic.Location()),
	)
	monitorService := service.NewMonitorService(pool, cfg.Monitor.HealthcheckSchedule, log)

	// 6. Start background database monitor
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := monitorService.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start database monitor")
	}

	// 7. Setup Gin router
	gin.SetMode(cfg.Server.GinMode)
	r := router.New(cfg, router.Handlers{
		Appointments: handler.NewAppointmentHandler(appointmentService, log),
		Health:       handler.NewHealthHandler(pool),
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 8. Serve until interrupted
	go func() {
		log.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	exitCode := 0
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		exitCode = 1
	}

	// Stop the monitor before the pool goes away
	cancel()
	monitorService.Stop()

	if err := pool.Close(); err != nil {
		log.WithError(err).Error("Failed to close database pool")
		exitCode = 1
	}

	log.Info("Server exited")
	if exitCode != 0 {
		shutdownCancel()
		os.Exit(exitCode)
	}
}
