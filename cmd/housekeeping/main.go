// Command housekeeping marks quiz sessions that were left in progress for
// longer than quiz.abandon_after as abandoned. Run it from cron.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"exam-byte/internal/config"
	"exam-byte/internal/database"
	"exam-byte/internal/logger"
	"exam-byte/internal/repository"
	"exam-byte/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewSQLXOracleDB(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	housekeeping := service.NewHousekeepingService(repository.NewQuizSessionDatabaseAdapter(db), repository.NewTransactionManagerAdapter(db))
	abandoned, err := housekeeping.AbandonStale(ctx, cfg.Quiz.AbandonAfter)
	if err != nil {
		l.Error("Housekeeping failed", zap.Int("abandoned", abandoned), zap.Error(err))
		return
	}
	l.Info("Housekeeping finished", zap.Int("abandoned", abandoned), zap.Duration("older_than", cfg.Quiz.AbandonAfter))
}
