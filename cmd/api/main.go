package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/fardannozami/accountability-tracker/internal/app/usecase"
	"github.com/fardannozami/accountability-tracker/internal/calendar"
	"github.com/fardannozami/accountability-tracker/internal/config"
	"github.com/fardannozami/accountability-tracker/internal/infra/api"
	"github.com/fardannozami/accountability-tracker/internal/infra/sqlite"
	"github.com/fardannozami/accountability-tracker/internal/logging"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to load timezone: %v", err)
	}

	// 2. Logger
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 3. Database & Repositories
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.SQLitePath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	activities := sqlite.NewActivityRepository(db)
	members := sqlite.NewMemberRepository(db)
	if err := activities.InitTable(context.Background()); err != nil {
		logger.Fatal("Failed to init activity tables", zap.Error(err))
	}
	if err := members.InitTable(context.Background()); err != nil {
		logger.Fatal("Failed to init members table", zap.Error(err))
	}

	// 4. Use Cases
	clock := calendar.NewZoneClock(loc)
	handler := api.NewHandler(
		usecase.NewGetStreakUsecase(activities, clock),
		usecase.NewGetWeekReportUsecase(activities, clock),
		usecase.NewGetLeaderboardUsecase(members, activities, clock),
		usecase.NewRecordActivityUsecase(activities),
		usecase.NewListActivityUsecase(activities),
		logger,
	)

	// 5. HTTP Server
	app := api.NewServer(handler, logger, api.ServerConfig{CORSOrigins: cfg.CORSOrigins})

	go func() {
		logger.Info("Listening", zap.String("port", cfg.Port), zap.String("timezone", loc.String()))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("Server stopped", zap.Error(err))
		}
	}()

	// 6. Wait for OS Signal
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("Shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}
