package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashmidera/migralog/internal/api"
	"github.com/ashmidera/migralog/internal/db"
	"github.com/ashmidera/migralog/internal/services"
)

func main() {
	_ = godotenv.Load()

	setupLogger(getEnv("LOG_LEVEL", "info"))

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	dbPath := getEnv("DB_PATH", filepath.Join("data", "migralog.db"))
	port := getEnv("PORT", "8080")
	metricsPort := getEnv("METRICS_PORT", "9091")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		slog.Error("database init failed", "error", err)
		os.Exit(1)
	}

	retry := db.NewRetryExecutor(db.DefaultRetryConfig, slog.Default(), db.NewSlogFailureSink(slog.Default()))
	repos := db.NewRepositories(database, retry)

	episodeService := services.NewEpisodeService(repos.Episodes, repos.IntensityReadings, repos.SymptomLogs, repos.PainLocationLogs, repos.EpisodeNotes)
	statusService := services.NewStatusService(repos.DailyStatuses)
	medicationService := services.NewMedicationService(repos.Medications, repos.Schedules, repos.Doses)
	calendarService := services.NewCalendarService(repos.Episodes, repos.DailyStatuses, repos.Overlays, repos.Medications, repos.Schedules, repos.Doses)

	handler := api.NewHandler(episodeService, statusService, medicationService, calendarService, location, slog.Default())

	app := fiber.New(fiber.Config{
		AppName:               "Migralog",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	api.RegisterRoutes(app, handler)

	metricsServer := startMetricsServer(metricsPort)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", "error", err)
		}
	}()

	slog.Info("migralog listening", "port", port, "db", dbPath, "tz", location.String())
	if err := app.Listen(":" + port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	logLevel := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.RFC3339,
	})
	slog.SetDefault(slog.New(handler))
}

func startMetricsServer(port string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: ":" + port, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server exited", "error", err)
		}
	}()
	return server
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("invalid TZ, falling back to UTC", "tz", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
