package services

import (
	"context"
	"time"

	"github.com/Ajayrajc1998/wedding/internal/models"

	"gorm.io/gorm"
)

type SubmissionService struct {
	db      *gorm.DB
	scoring *ScoringService
	now     func() time.Time
}

func NewSubmissionService(db *gorm.DB, scoring *ScoringService) *SubmissionService {
	return &SubmissionService{db: db, scoring: scoring, now: time.Now}
}

type SubmissionInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Answers     map[uint]string
}

// Submit scores the whole answer set and stores one result row. Nothing is
// written when any referenced quiz is missing.
func (s *SubmissionService) Submit(ctx context.Context, input SubmissionInput) (*models.QuizParticipant, error) {
	answers := input.Answers
	if answers == nil {
		answers = map[uint]string{}
	}

	var result models.QuizParticipant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(answers))
		for id := range answers {
			ids = append(ids, id)
		}

		found := map[uint]models.Quiz{}
		if len(ids) > 0 {
			var quizzes []models.Quiz
			if err := tx.Where("id IN ?", ids).Find(&quizzes).Error; err != nil {
				return err
			}
			for _, q := range quizzes {
				found[q.ID] = q
			}
		}

		total, err := s.scoring.CalculateMarks(answers, found)
		if err != nil {
			return err
		}

		result = models.QuizParticipant{
			FirstName:        input.FirstName,
			LastName:         input.LastName,
			PhoneNumber:      input.PhoneNumber,
			SubmittedAnswers: answers,
			TotalMarks:       total,
			SubmittedAt:      s.now().UTC(),
		}
		return tx.Create(&result).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListResults orders results best score first, earliest submission breaking
// ties.
func (s *SubmissionService) ListResults(ctx context.Context) ([]models.QuizParticipant, error) {
	results := []models.QuizParticipant{}
	err := s.db.WithContext(ctx).
		Order("total_marks DESC").
		Order("submitted_at ASC").
		Order("id ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
