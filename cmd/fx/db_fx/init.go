package db_fx

import (
	"context"
	"log"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"rodneysbrain/internal/infra"
	"rodneysbrain/internal/models/db_models"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle) *gorm.DB {
	db := infra.InitPostgresql()

	err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.Project{},
		&db_models.PaymentTransaction{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})

	return db
}
