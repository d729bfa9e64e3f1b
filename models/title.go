package models

import (
	"time"
)

// Title represents a work that users review
type Title struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:256;not null;index"`
	Year        int       `json:"year" gorm:"not null"`
	Description *string   `json:"description" gorm:"type:text"`
	CategoryID  *uint     `json:"-" gorm:"index"`
	Rating      *float64  `json:"rating"` // mean review score, nil until the first review
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// Relations
	Category *Category `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Genres   []Genre   `json:"genre" gorm:"many2many:genre_titles;constraint:OnDelete:CASCADE"`
}
