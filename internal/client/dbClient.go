package client

import (
	"log/slog"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shoppingcart-backend/internal/model"
)

func InitSqliteClient(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		slog.Error("failed to open database", "path", path, "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&model.CartLine{},
		&model.Order{},
		&model.OrderItem{},
		&model.CheckoutAttempt{},
	); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	return db
}
