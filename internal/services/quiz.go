package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Ajayrajc1998/wedding/internal/flags"
	"github.com/Ajayrajc1998/wedding/internal/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db    *gorm.DB
	flags flags.Store
	gated bool
}

// NewQuizService builds the quiz service. When gated is true the public
// listing is refused while the quiz flag is off.
func NewQuizService(db *gorm.DB, store flags.Store, gated bool) *QuizService {
	return &QuizService{db: db, flags: store, gated: gated}
}

type QuizInput struct {
	Question      string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
}

func (s *QuizService) Create(ctx context.Context, input QuizInput) (*models.Quiz, error) {
	correct, err := normalizeOption(input.CorrectOption)
	if err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		Question:      input.Question,
		OptionA:       input.OptionA,
		OptionB:       input.OptionB,
		OptionC:       input.OptionC,
		OptionD:       input.OptionD,
		CorrectOption: correct,
	}
	if err := s.db.WithContext(ctx).Create(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) List(ctx context.Context) ([]models.Quiz, error) {
	quizzes := []models.Quiz{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// ListVisible returns the guest view of the quiz, without answers.
func (s *QuizService) ListVisible(ctx context.Context) ([]models.PublicQuiz, error) {
	if s.gated {
		enabled, err := s.flags.Get(ctx, flags.Quiz)
		if err != nil {
			return nil, err
		}
		if !enabled {
			return nil, newError(ErrForbidden, "quiz is not available")
		}
	}

	quizzes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicQuiz, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, q.Public())
	}
	return out, nil
}

func (s *QuizService) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "quiz not found")
		}
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) Update(ctx context.Context, id uint, input QuizInput) (*models.Quiz, error) {
	correct, err := normalizeOption(input.CorrectOption)
	if err != nil {
		return nil, err
	}

	quiz, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quiz.Question = input.Question
	quiz.OptionA = input.OptionA
	quiz.OptionB = input.OptionB
	quiz.OptionC = input.OptionC
	quiz.OptionD = input.OptionD
	quiz.CorrectOption = correct
	if err := s.db.WithContext(ctx).Save(quiz).Error; err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Quiz{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return newError(ErrNotFound, "quiz not found")
	}
	return nil
}

func normalizeOption(label string) (string, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	switch label {
	case models.OptionA, models.OptionB, models.OptionC, models.OptionD:
		return label, nil
	}
	return "", newError(ErrValidation, "correct_option must be one of A, B, C, D")
}
