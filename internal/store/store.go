// Package store is the relational adapter: parameterized GORM queries over
// users, menu, orders and order_items.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrNotCompleted = errors.New("order is not completed")
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Ping checks the underlying connection pool.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
