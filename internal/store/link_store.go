package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"snipurl-platform/internal/model"
)

type linkStore struct {
	db *gorm.DB
}

func NewLinkStore(db *gorm.DB) LinkStore {
	return &linkStore{db: db}
}

func (s *linkStore) Create(ctx context.Context, link *model.Link) error {
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAliasTaken
		}
		return err
	}
	return nil
}

func (s *linkStore) GetByAlias(ctx context.Context, alias string) (*model.Link, error) {
	var link model.Link
	if err := s.db.WithContext(ctx).Where("alias = ?", alias).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (s *linkStore) GetByID(ctx context.Context, id string) (*model.Link, error) {
	var link model.Link
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (s *linkStore) List(ctx context.Context) ([]model.Link, error) {
	var links []model.Link
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (s *linkStore) Update(ctx context.Context, id string, update LinkUpdate) (*model.Link, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.OriginalURL != nil {
		fields["original_url"] = *update.OriginalURL
	}

	if len(fields) > 0 {
		result := s.db.WithContext(ctx).Model(&model.Link{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetByID(ctx, id)
}

// Delete removes the link and its click events in one transaction. Deleting an
// unknown id is not an error.
func (s *linkStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("link_id = ?", id).Delete(&model.ClickEvent{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Link{}).Error
	})
}

func (s *linkStore) IncrementClicks(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ?", id).
		Update("clicks", gorm.Expr("clicks + ?", 1)).Error
}

func (s *linkStore) AliasExists(ctx context.Context, alias string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Link{}).Where("alias = ?", alias).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *linkStore) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Link{}).Count(&count).Error
	return count, err
}
