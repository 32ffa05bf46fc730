package models

import "time"

type Quiz struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question" validate:"required"`
	Answer    string    `gorm:"type:text;not null" json:"answer" validate:"required"`
	Tips      []Tip     `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"tips,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
