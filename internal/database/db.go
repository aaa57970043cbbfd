package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"visitor-backend/internal/logging"
	"visitor-backend/internal/models"
	"visitor-backend/internal/store"
)

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	logging.Info("Database connected and migrated")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Guard{},
		&models.Resident{},
		&models.VisitorInvite{},
		&models.VisitLog{},
		&models.AuditLog{},
		&models.Sequence{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Seed loads snap into empty tables and starts the display id counters
// after the highest seeded id. Tables that already hold rows are left alone.
func Seed(ctx context.Context, db *gorm.DB, snap store.Snapshot) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedTable(tx, &models.Guard{}, snap.Guards); err != nil {
			return err
		}
		if err := seedTable(tx, &models.Resident{}, snap.Residents); err != nil {
			return err
		}
		if err := seedTable(tx, &models.VisitorInvite{}, snap.Invites); err != nil {
			return err
		}
		if err := seedTable(tx, &models.VisitLog{}, snap.Visits); err != nil {
			return err
		}

		for prefix, value := range snap.Sequences() {
			seq := models.Sequence{Prefix: prefix, Value: value}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
				return fmt.Errorf("seed sequence %s: %w", prefix, err)
			}
		}
		return nil
	})
}

func seedTable[T any](tx *gorm.DB, model *T, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return fmt.Errorf("count %T: %w", model, err)
	}
	if count > 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("seed %T: %w", model, err)
	}
	logging.Info("Seeded table", zap.String("model", fmt.Sprintf("%T", model)), zap.Int("rows", len(rows)))
	return nil
}
