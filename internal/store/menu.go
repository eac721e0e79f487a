package store

import (
	"context"

	"restaurant/internal/models"
)

func (s *Store) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	err := s.DB.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (s *Store) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return s.DB.WithContext(ctx).Create(item).Error
}
