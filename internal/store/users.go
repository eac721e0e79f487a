package store

import (
	"context"

	"gorm.io/gorm/clause"

	"restaurant/internal/models"
)

// FindOrCreateUser returns the user with email, inserting it first when absent.
// The insert is conflict-safe: two concurrent first logins race on the unique
// email index and both read back the single surviving row.
func (s *Store) FindOrCreateUser(ctx context.Context, email, name string) (models.User, error) {
	db := s.DB.WithContext(ctx)

	candidate := models.User{Email: email, Name: name}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := db.Where("email = ?", email).Take(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}
