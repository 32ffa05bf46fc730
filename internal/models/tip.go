package models

import "time"

// Tip is a hint attached to a quiz. AuthorID 0 marks an anonymous tip.
type Tip struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text" validate:"required"`
	Accepted  bool      `gorm:"not null;default:false" json:"accepted"`
	AuthorID  uint      `gorm:"not null;default:0;index" json:"author_id"`
	QuizID    uint      `gorm:"not null;index" json:"quiz_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
