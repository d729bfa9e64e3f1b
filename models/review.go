package models

import (
	"time"
)

// Score bounds of a review
const (
	MinScore = 1
	MaxScore = 10
)

// Review is a user's scored opinion of a title. One per (author, title).
type Review struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	TitleID  uint      `json:"-" gorm:"not null;uniqueIndex:idx_reviews_author_title,priority:2"`
	AuthorID uint      `json:"-" gorm:"not null;uniqueIndex:idx_reviews_author_title,priority:1"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Score    int       `json:"score" gorm:"not null;check:chk_reviews_score_range,score >= 1 AND score <= 10"`
	PubDate  time.Time `json:"pubDate" gorm:"autoCreateTime;index"`

	// Relations
	Title    Title     `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
	Author   User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}
