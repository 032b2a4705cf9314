package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/S4ntifdz/new-pwa/models"
)

// Both records live in single-row tables keyed by recordID: one device, one
// session, one cart.
const recordID uint = 1

// GormStore is the durable Store backed by a local sqlite file.
type GormStore struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite file at path and migrates the schema.
// Use ":memory:" for a throwaway store.
func Open(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	if err := db.AutoMigrate(&models.SessionRecord{}, &models.CartRecord{}); err != nil {
		return nil, fmt.Errorf("migrate storage: %w", err)
	}

	return &GormStore{db: db}, nil
}

// NewGormStore wraps an already-open gorm handle. The caller is responsible
// for migration; tests use this with a shared in-memory DB.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) LoadSession() (*models.SessionRecord, error) {
	var rec models.SessionRecord
	err := s.db.First(&rec, recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) SaveSession(rec models.SessionRecord) error {
	rec.ID = recordID
	rec.UpdatedAt = time.Now()
	return s.db.Save(&rec).Error
}

func (s *GormStore) DeleteSession() error {
	return s.db.Delete(&models.SessionRecord{}, recordID).Error
}

func (s *GormStore) LoadCart() (*models.CartSnapshot, error) {
	var rec models.CartRecord
	err := s.db.First(&rec, recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap models.CartSnapshot
	if err := json.Unmarshal([]byte(rec.Payload), &snap); err != nil {
		return nil, fmt.Errorf("corrupt cart snapshot: %w", err)
	}
	return &snap, nil
}

func (s *GormStore) SaveCart(snap models.CartSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	rec := models.CartRecord{
		ID:        recordID,
		Payload:   string(payload),
		UpdatedAt: time.Now(),
	}
	return s.db.Save(&rec).Error
}

func (s *GormStore) DeleteCart() error {
	return s.db.Delete(&models.CartRecord{}, recordID).Error
}
