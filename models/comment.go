package models

import (
	"time"
)

// Comment is a reply to a review
type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	ReviewID uint      `json:"-" gorm:"not null;index"`
	AuthorID uint      `json:"-" gorm:"not null;index"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pubDate" gorm:"autoCreateTime;index"`

	// Relations
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
