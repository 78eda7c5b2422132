package models

import "time"

type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_movie_user"`
	MovieID   int64     `json:"movie_id" gorm:"not null;uniqueIndex:idx_ratings_movie_user"`
	Stars     int       `json:"stars" gorm:"not null;check:stars >= 1 AND stars <= 5"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Movie Movie `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}
