package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chayen/internal/config"
	"chayen/internal/dal"
	"chayen/internal/handler"
	"chayen/internal/service"
	"chayen/internal/session"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to redis", "addr", cfg.Redis.Addr)

	// Initialize repositories
	orderRepo := dal.NewOrderRepository(db)
	memberRepo := dal.NewMemberRepository(db)
	shiftRepo := dal.NewShiftRepository(db)
	catalogRepo := dal.NewCatalogRepository(db)
	voucherRepo := dal.NewVoucherRepository(db)
	reportRepo := dal.NewReportRepository(db)

	// Initialize services
	sessions := session.NewRedisStore(redisClient, cfg.Session.TTL)
	orderService := service.NewOrderService(orderRepo, memberRepo, catalogRepo, logger)
	shiftService := service.NewShiftService(shiftRepo, catalogRepo, logger)
	memberService := service.NewMemberService(memberRepo)
	voucherService := service.NewVoucherService(voucherRepo, memberRepo, logger)
	reportService := service.NewReportService(reportRepo)
	authService := service.NewAuthService(catalogRepo, sessions, logger)

	// Initialize handlers
	orderHandler := handler.NewOrderHandler(orderService)
	shiftHandler := handler.NewShiftHandler(shiftService)
	memberHandler := handler.NewMemberHandler(memberService)
	voucherHandler := handler.NewVoucherHandler(voucherService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)

	router := NewRouter(logger, authService, orderHandler, shiftHandler, memberHandler, voucherHandler, reportHandler, authHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error starting server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited properly")
}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
