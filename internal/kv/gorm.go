package kv

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is one persisted key/value row.
type Document struct {
	Key       string    `gorm:"column:doc_key;primaryKey;size:191"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName pins the table name shared with the SQL migrations.
func (Document) TableName() string { return "documents" }

// GormStore keeps documents in a SQL table through gorm, so the same code
// serves sqlite and postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore. The documents table must already exist.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc Document
	err := s.db.WithContext(ctx).Where("doc_key = ?", key).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(doc.Value), true, nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	return upsertDocument(s.db.WithContext(ctx), key, value)
}

func (s *GormStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			if err := upsertDocument(tx, k, entries[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("doc_key IN ?", keys).Delete(&Document{}).Error
}

func upsertDocument(db *gorm.DB, key string, value []byte) error {
	doc := Document{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&doc).Error
}
