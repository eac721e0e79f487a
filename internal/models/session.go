package models

import "time"

// Session is the server-side record behind a session cookie. Only the hash of
// the opaque token is persisted.
type Session struct {
	TokenHash string    `bson:"tokenHash" json:"-"`
	UID       string    `bson:"uid" json:"uid"`
	Email     string    `bson:"email" json:"email"`
	UserID    uint      `bson:"userId" json:"user_id"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Identity returns the caller identity carried by the session.
func (s Session) Identity() Identity {
	return Identity{UID: s.UID, Email: s.Email, UserID: s.UserID}
}
