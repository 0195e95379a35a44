package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/attendance-policy-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-policy-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/cache"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-policy-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/attendance-policy-go/internal/repository/rediscache"
	attendanceService "github.com/cmlabs-hris/attendance-policy-go/internal/service/attendance"
	latenessService "github.com/cmlabs-hris/attendance-policy-go/internal/service/lateness"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	punchRepo := postgresql.NewPunchRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	applicationRepo := postgresql.NewLateApplicationRepository(db)
	ledgerRepo := postgresql.NewLateLedgerRepository(db)
	settingsRepo := postgresql.NewLateSettingsRepository(db)

	// Settings reads go through Redis; everything degrades to Postgres when
	// the cache is unavailable.
	cachedSettingsRepo := settingsRepo
	if redisClient, err := cache.NewRedisClient(cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logger.Warn("Redis unavailable, settings cache disabled", "error", err)
	} else {
		cachedSettingsRepo = rediscache.NewSettingsRepository(settingsRepo, redisClient, logger)
		defer redisClient.Close()
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	latenessSvc := latenessService.NewLatenessService(db, applicationRepo, ledgerRepo, cachedSettingsRepo, attendanceRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, punchRepo, attendanceRepo, shiftRepo, cachedSettingsRepo, latenessSvc)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	latenessHandler := appHTTP.NewLatenessHandler(latenessSvc)

	scheduler := cron.NewScheduler()
	cron.NewLatenessJobs(attendanceRepo, latenessSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg.App.Env, cfg.App.AllowedOrigins, JWTService, attendanceHandler, latenessHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	if err := server.Close(); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
}
