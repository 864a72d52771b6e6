package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"snipurl-platform/internal/model"
)

type clickStore struct {
	db *gorm.DB
}

func NewClickStore(db *gorm.DB) ClickStore {
	return &clickStore{db: db}
}

func (s *clickStore) Append(ctx context.Context, event *model.ClickEvent) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *clickStore) AppendWithIncrement(ctx context.Context, event *model.ClickEvent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		return tx.Model(&model.Link{}).
			Where("id = ?", event.LinkID).
			Update("clicks", gorm.Expr("clicks + ?", 1)).Error
	})
}

func (s *clickStore) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ClickEvent{}).Count(&count).Error
	return count, err
}

func (s *clickStore) CountByLink(ctx context.Context, linkID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ClickEvent{}).Where("link_id = ?", linkID).Count(&count).Error
	return count, err
}

func (s *clickStore) QueryByTimeWindow(ctx context.Context, start, end time.Time) ([]model.ClickEvent, error) {
	var events []model.ClickEvent
	err := s.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

// TopCountries returns the most-clicked countries. Equal counts are ordered
// alphabetically so the result is deterministic.
func (s *clickStore) TopCountries(ctx context.Context, limit int) ([]CountryCount, error) {
	var rows []CountryCount
	err := s.db.WithContext(ctx).
		Model(&model.ClickEvent{}).
		Select("country, COUNT(*) as clicks").
		Group("country").
		Order("clicks DESC, country ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
