package ledger

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// HistoryEntry 一行一个已收录标题，ID 保序
type HistoryEntry struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"size:512"`
}

func (HistoryEntry) TableName() string { return "history" }

// GormStore Postgres 后端。Save 在一个事务里整表重写，和其他后端一样
// 把账本当作单一序列看待
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&HistoryEntry{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load(ctx context.Context) ([]string, error) {
	var entries []HistoryEntry
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&entries).Error; err != nil {
		log.Printf("ledger: load history rows: %v, starting with empty history", err)
		return []string{}, nil
	}

	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	return titles, nil
}

func (s *GormStore) Save(ctx context.Context, titles []string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&HistoryEntry{}).Error; err != nil {
			return err
		}
		if len(titles) == 0 {
			return nil
		}
		entries := make([]HistoryEntry, 0, len(titles))
		for _, t := range titles {
			entries = append(entries, HistoryEntry{Title: t})
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return fmt.Errorf("save history rows: %w", err)
	}
	return nil
}
