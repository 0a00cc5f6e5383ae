// Package storage provides the durable key-value slots the state
// stores persist their JSON snapshots into. Slots are opaque: the
// store owning a key decides what the bytes mean, and a reader that
// cannot parse a slot discards it rather than failing.
package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is a durable key -> JSON value slot store.
type KV interface {
	// Get returns the slot value and whether the slot exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put overwrites the slot, last writer wins.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the slot. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

type slotRow struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (slotRow) TableName() string { return "client_slots" }

// GormKV stores slots in a single table, one row per key.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

// Migrate creates the slot table.
func (s *GormKV) Migrate() error {
	return s.db.AutoMigrate(&slotRow{})
}

func (s *GormKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row slotRow
	tx := s.db.WithContext(ctx).Where("key = ?", key).First(&row)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, tx.Error
	}
	return row.Value, true, nil
}

func (s *GormKV) Put(ctx context.Context, key string, value []byte) error {
	row := slotRow{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *GormKV) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&slotRow{}).Error
}

// DeleteStale removes slots under the given key prefix that have not
// been written since the cutoff. Used by the cleanup command to sweep
// abandoned session records.
func (s *GormKV) DeleteStale(ctx context.Context, prefix string, cutoff time.Time) (int64, error) {
	tx := s.db.WithContext(ctx).
		Where("key LIKE ? AND updated_at < ?", prefix+"%", cutoff).
		Delete(&slotRow{})
	return tx.RowsAffected, tx.Error
}
