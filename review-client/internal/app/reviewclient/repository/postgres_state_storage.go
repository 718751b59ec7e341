package repository

import (
	"context"
	"errors"
	"fmt"

	"bookreviews/pkg/metrics"
	"bookreviews/review-client/internal/app/reviewclient/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	dbServiceName    = "review-client"
	clientStateTable = "client_states"
)

// postgresStateStorage хранит снимки состояния в таблице client_states через GORM
type postgresStateStorage struct {
	db *gorm.DB
}

// NewPostgresStateStorage создает Postgres хранилище состояния
func NewPostgresStateStorage(db *gorm.DB) StateStorage {
	return &postgresStateStorage{db: db}
}

// MigrateStateStorage создает таблицу client_states, если ее нет
func MigrateStateStorage(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.ClientStateRecord{}); err != nil {
		return fmt.Errorf("failed to migrate client_states: %w", err)
	}
	return nil
}

func (r *postgresStateStorage) Load(ctx context.Context, name string) ([]byte, error) {
	timer := metrics.NewDbTimer(dbServiceName, metrics.DbOpSelect, clientStateTable)
	defer timer.ObserveDuration()

	var record entity.ClientStateRecord
	result := r.db.WithContext(ctx).Where("name = ?", name).Take(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStateNotFound
		}
		metrics.RecordDbError(dbServiceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get client state %s: %w", name, result.Error)
	}

	return []byte(record.Value), nil
}

func (r *postgresStateStorage) Save(ctx context.Context, name string, value []byte) error {
	timer := metrics.NewDbTimer(dbServiceName, metrics.DbOpUpsert, clientStateTable)
	defer timer.ObserveDuration()

	record := entity.ClientStateRecord{
		Name:  name,
		Value: string(value),
	}

	// Upsert: одна строка на имя записи
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record)
	if result.Error != nil {
		metrics.RecordDbError(dbServiceName, metrics.DbOpUpsert)
		return fmt.Errorf("failed to save client state %s: %w", name, result.Error)
	}

	return nil
}
