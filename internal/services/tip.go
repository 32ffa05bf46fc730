package services

import (
	"errors"
	"fmt"

	"github.com/josetomecore/P6-Quiz/internal/models"

	"gorm.io/gorm"
)

var (
	tipCreateFields = []string{"Text", "QuizID", "AuthorID", "Accepted"}
	tipEditFields   = []string{"Text", "Accepted"}
	tipAcceptFields = []string{"Accepted"}
)

type TipService struct {
	db *gorm.DB
}

func NewTipService(db *gorm.DB) *TipService {
	return &TipService{db: db}
}

func (s *TipService) GetTip(tipID uint) (*models.Tip, error) {
	var tip models.Tip
	err := s.db.First(&tip, tipID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("there is no tip with tipId=%d: %w", tipID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &tip, nil
}

// CreateTip attaches a new, not yet accepted tip to quizID. authorID 0
// records an anonymous tip.
func (s *TipService) CreateTip(quizID, authorID uint, text string) (*models.Tip, error) {
	tip := models.Tip{
		Text:     text,
		QuizID:   quizID,
		AuthorID: authorID,
	}
	if err := validateFields(&tip, tipCreateFields...); err != nil {
		return &tip, err
	}
	if err := s.db.Select(writeColumns(tipCreateFields, true)).Create(&tip).Error; err != nil {
		return &tip, err
	}
	return &tip, nil
}

// UpdateTipText replaces the text and withdraws any previous acceptance.
func (s *TipService) UpdateTipText(tip *models.Tip, text string) error {
	tip.Text = text
	tip.Accepted = false
	if err := validateFields(tip, tipEditFields...); err != nil {
		return err
	}
	return s.db.Model(tip).Select(writeColumns(tipEditFields, false)).Updates(tip).Error
}

func (s *TipService) AcceptTip(tip *models.Tip) error {
	tip.Accepted = true
	return s.db.Model(tip).Select(writeColumns(tipAcceptFields, false)).Updates(tip).Error
}

func (s *TipService) DeleteTip(tip *models.Tip) error {
	return s.db.Delete(&models.Tip{}, tip.ID).Error
}
