package services

import (
	"errors"
	"fmt"

	"github.com/josetomecore/P6-Quiz/internal/models"

	"gorm.io/gorm"
)

var quizFields = []string{"Question", "Answer"}

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

// ListQuizzes returns every quiz in store order.
func (s *QuizService) ListQuizzes() ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := s.db.Order("id ASC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// ListQuizIDs returns the id of every quiz in store order.
func (s *QuizService) ListQuizIDs() ([]uint, error) {
	var ids []uint
	if err := s.db.Model(&models.Quiz{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *QuizService) GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Preload("Tips", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&quiz, quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("there is no quiz with id=%d: %w", quizID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// CreateQuiz builds a quiz from question and answer only. On a
// *ValidationError the returned quiz holds the attempted values.
func (s *QuizService) CreateQuiz(question, answer string) (*models.Quiz, error) {
	quiz := models.Quiz{
		Question: question,
		Answer:   answer,
	}
	if err := validateFields(&quiz, quizFields...); err != nil {
		return &quiz, err
	}
	if err := s.db.Select(writeColumns(quizFields, true)).Create(&quiz).Error; err != nil {
		return &quiz, err
	}
	return &quiz, nil
}

func (s *QuizService) UpdateQuiz(quiz *models.Quiz, question, answer string) error {
	quiz.Question = question
	quiz.Answer = answer
	if err := validateFields(quiz, quizFields...); err != nil {
		return err
	}
	return s.db.Model(quiz).Select(writeColumns(quizFields, false)).Updates(quiz).Error
}

// DeleteQuiz removes the quiz together with its tips.
func (s *QuizService) DeleteQuiz(quiz *models.Quiz) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Tip{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Quiz{}, quiz.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("there is no quiz with id=%d: %w", quiz.ID, ErrNotFound)
		}
		return nil
	})
}

func (s *QuizService) CountQuizzes() (int64, error) {
	var count int64
	err := s.db.Model(&models.Quiz{}).Count(&count).Error
	return count, err
}
