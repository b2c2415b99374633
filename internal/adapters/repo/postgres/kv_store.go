package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/munek/internal/domain"
)

type kvEntry struct {
	Key       string `gorm:"column:storage_key;primaryKey;size:255"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string { return "storage_entries" }

// KVStore persiste las claves en una tabla; varias instancias pueden compartirla
// (gana la última escritura).
type KVStore struct{ db *gorm.DB }

func NewKVStore(db *gorm.DB) *KVStore { return &KVStore{db: db} }

func (s *KVStore) Migrate() error {
	return s.db.AutoMigrate(&kvEntry{})
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var e kvEntry
	if err := s.db.WithContext(ctx).First(&e, "storage_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return []byte(e.Value), nil
}

func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	e := kvEntry{Key: key, Value: string(value), UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("storage_key = ?", key).Delete(&kvEntry{}).Error
}
