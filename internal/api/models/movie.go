package models

import "time"

type Movie struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"uniqueIndex;size:100;not null"`
	Description string    `json:"description" gorm:"size:500"`
	Poster      *string   `json:"poster,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// association
	// response shapes come from the dto package, the association is not
	// serialized here
	Ratings []Rating `json:"-" gorm:"foreignKey:MovieID"`
}

func (Movie) TableName() string {
	return "movies"
}
