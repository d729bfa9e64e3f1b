package models

import (
	"time"
)

// Genre represents a genre a title can be tagged with
type Genre struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:256;not null"`
	Slug      string    `json:"slug" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
