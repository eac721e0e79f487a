package models

import "time"

// User is created on first successful login and never deleted.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// Identity is the verified caller attached to a request by the session layer.
// A zero UserID means the request is anonymous.
type Identity struct {
	UID    string
	Email  string
	UserID uint
}

// Authenticated reports whether the identity carries a user id.
func (i Identity) Authenticated() bool {
	return i.UserID != 0
}
