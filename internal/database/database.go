package database

import (
	"context"
	"fmt"
	"time"

	"exam-byte/internal/config"
	"exam-byte/internal/logger"

	_ "github.com/godror/godror" // Oracle driver (OCI), selected with db.driver=godror
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver (pure Go), registered as "oracle"
	"go.uber.org/zap"
)

// DriverName maps the configured driver to the registered database/sql name.
func DriverName(driver string) string {
	if driver == "godror" {
		return "godror"
	}
	return "oracle"
}

// NewSQLXOracleDB opens and pings the Oracle database described by cfg.
func NewSQLXOracleDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	driver := DriverName(cfg.DB.Driver)

	db, err := sqlx.Open(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open Oracle database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	// 연결 테스트
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	logger.Get().Info("Successfully connected to Oracle database",
		zap.String("driver", driver),
		zap.String("host", cfg.DB.Host))
	return db, nil
}
