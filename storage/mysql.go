package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/roserial_backend/config"
	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotBlob is the single-row key/blob table backing the mysql provider.
type SnapshotBlob struct {
	StorageKey string    `gorm:"primaryKey;size:64"`
	Data       []byte    `gorm:"type:longblob;not null"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// MySQLStore keeps the snapshot blob in one row through GORM. The aggregate
// stays a single JSON document; MySQL is only the durable key/value medium.
type MySQLStore struct {
	migrated bool
}

func NewMySQLStore() *MySQLStore {
	return &MySQLStore{}
}

func (s *MySQLStore) db(ctx context.Context) (*gorm.DB, error) {
	db := config.GetDB()
	if db == nil {
		return nil, errors.New("database not initialized; call config.ConnectDatabaseWithRetry first")
	}
	if !s.migrated {
		if err := db.WithContext(ctx).AutoMigrate(&SnapshotBlob{}); err != nil {
			return nil, err
		}
		s.migrated = true
	}
	return db.WithContext(ctx), nil
}

func (s *MySQLStore) Load(ctx context.Context) (*models.Snapshot, bool, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, false, err
	}
	var row SnapshotBlob
	if err := db.Where("storage_key = ?", models.StorageKey).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal(row.Data, &snap); err != nil {
		return nil, false, err
	}
	return &snap, true, nil
}

func (s *MySQLStore) Save(ctx context.Context, snap *models.Snapshot) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	row := SnapshotBlob{StorageKey: models.StorageKey, Data: data}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func (s *MySQLStore) Reset(ctx context.Context) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return db.Where("storage_key = ?", models.StorageKey).Delete(&SnapshotBlob{}).Error
}
