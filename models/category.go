package models

import (
	"time"
)

// Category represents a kind of title (film, book, music)
type Category struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:256;not null"`
	Slug      string    `json:"slug" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
