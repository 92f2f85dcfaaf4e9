package gorm

import (
	"log/slog"
	"os"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"github.com/sunthewhat/easy-cert-render/common"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitGorm() {
	// Configure slog-gorm logger
	lg := slogGorm.New(
		slogGorm.WithHandler(slog.Default().Handler()),
		slogGorm.WithSlowThreshold(100*time.Millisecond),
	)

	db, connectionErr := Open(*common.Config.Postgres, lg)
	if connectionErr != nil {
		slog.Error("Failed to connect to database", "error", connectionErr)
		os.Exit(1)
	}

	slog.Info("GORM Connected!")

	common.Gorm = db
}

// Open connects to Postgres with the simple protocol, which keeps pgbouncer
// in transaction mode happy.
func Open(dsn string, lg logger.Interface) (*gorm.DB, error) {
	connector := postgres.New(
		postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		},
	)

	config := &gorm.Config{}
	if lg != nil {
		config.Logger = lg
	}

	return gorm.Open(connector, config)
}
