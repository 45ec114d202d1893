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

	"go.mau.fi/whatsmeow/types"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/fardannozami/accountability-tracker/internal/app/usecase"
	"github.com/fardannozami/accountability-tracker/internal/calendar"
	"github.com/fardannozami/accountability-tracker/internal/config"
	"github.com/fardannozami/accountability-tracker/internal/infra/sqlite"
	"github.com/fardannozami/accountability-tracker/internal/infra/wa"
	"github.com/fardannozami/accountability-tracker/internal/logging"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.BotEnabled {
		log.Println("BOT_ENABLED is false, nothing to do")
		return
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
	// Enable WAL mode and busy timeout to avoid "database is locked" errors
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
	handleMessageUC := usecase.NewHandleMessageUsecase(
		members,
		usecase.NewRecordActivityUsecase(activities),
		usecase.NewGetStreakUsecase(activities, clock),
		usecase.NewGetWeekReportUsecase(activities, clock),
		usecase.NewGetLeaderboardUsecase(members, activities, clock),
		clock,
	)

	// 5. WhatsApp Service
	waService := wa.NewService(cfg.SQLitePath, logging.NewWALogger(logger, "whatsapp"), wa.ReplyOptions{
		DelayMin:   time.Duration(cfg.ReplyDelayMinMs) * time.Millisecond,
		DelayMax:   time.Duration(cfg.ReplyDelayMaxMs) * time.Millisecond,
		ShowTyping: cfg.ShowTyping,
	})

	// 6. Register Message Handler
	waService.SetMessageHandler(func(ctx context.Context, msg wa.Message) {
		if cfg.GroupID != "" && msg.Chat.String() != cfg.GroupID {
			return
		}

		// Members are keyed by phone number; linked-device ids are resolved first.
		userID := msg.Sender.User
		if msg.Sender.Server == types.HiddenUserServer || len(msg.Sender.User) > 15 {
			userID = members.ResolveLIDToPhone(ctx, msg.Sender.User)
		}

		name := msg.PushName
		if name == "" {
			name = "Unknown"
		}

		response, err := handleMessageUC.Execute(ctx, userID, name, msg.Text)
		if err != nil {
			logger.Error("Failed to handle message", zap.String("user", userID), zap.Error(err))
			return
		}
		if response == "" {
			return
		}

		logger.Debug("Replying", zap.String("user", userID), zap.String("command", msg.Text))
		if err := waService.Reply(ctx, msg.Chat, response); err != nil {
			logger.Error("Failed to send response", zap.Error(err))
		}
	})

	// 7. Initialize Client (DB, Device, etc) - DO NOT CONNECT YET
	if err := waService.Initialize(context.Background()); err != nil {
		logger.Fatal("Failed to initialize WhatsApp service", zap.Error(err))
	}

	// 8. Connect / Login Logic
	switch {
	case waService.IsLoggedIn():
		if err := waService.Connect(); err != nil {
			logger.Fatal("Failed to connect", zap.Error(err))
		}
		logger.Info("Client is already logged in")
	case cfg.BotPhone != "":
		// Pair Code Mode: must connect first to pair
		if err := waService.Connect(); err != nil {
			logger.Fatal("Failed to connect for pairing", zap.Error(err))
		}
		code, err := waService.Pair(context.Background(), cfg.BotPhone)
		if err != nil {
			logger.Error("Failed to generate pair code", zap.Error(err))
		} else {
			logger.Info("Enter this code under Linked Devices > Link with phone number", zap.String("pair_code", code))
		}
	default:
		logger.Info("Not logged in and BOT_PHONE not set, printing QR")
		if err := waService.PrintQR(context.Background()); err != nil {
			logger.Fatal("QR login failed", zap.Error(err))
		}
	}

	logger.Info("Bot is running... Press Ctrl+C to exit.")

	// 9. Wait for OS Signal
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("Shutting down...")
	waService.Disconnect()
}
