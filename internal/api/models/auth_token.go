package models

import (
	"time"
)

// AuthToken is the opaque bearer token bound 1:1 to a user. Repeated logins
// return the same key until the token is revoked.
type AuthToken struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}
