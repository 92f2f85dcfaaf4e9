package gorm

import (
	"log/slog"
	"os"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"github.com/sunthewhat/easy-cert-render/common"
	"github.com/sunthewhat/easy-cert-render/type/shared/model"
	"gorm.io/gorm"
)

func Push_db() {
	lg := slogGorm.New(
		slogGorm.WithHandler(slog.Default().Handler()),
		slogGorm.WithSlowThreshold(100*time.Millisecond),
		slogGorm.WithTraceAll(),
	)

	db, err := Open(*common.Config.Postgres, lg)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := Migrate(db); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("Database migration completed successfully")
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Models lists every table owned by the render service.
func Models() []any {
	return []any{
		new(model.Template),
		new(model.Event),
		new(model.Participant),
	}
}
