package models

import (
	"time"
)

// CommentMaxLength caps comment text, counted in runes.
const CommentMaxLength = 200

type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   uint      `gorm:"not null;index" json:"post_id"`
	Post     Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Text     string    `gorm:"size:200;not null" json:"text"`
	Created  time.Time `gorm:"autoCreateTime;index" json:"created"`
}

func (c Comment) String() string {
	return preview(c.Text)
}
