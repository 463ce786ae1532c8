package services

import "github.com/Ajayrajc1998/wedding/internal/models"

type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// CalculateMarks counts answers whose label equals the stored correct
// option. Any answer for a quiz missing from quizzes fails the whole batch.
func (s *ScoringService) CalculateMarks(answers map[uint]string, quizzes map[uint]models.Quiz) (int, error) {
	total := 0
	for quizID, answer := range answers {
		quiz, ok := quizzes[quizID]
		if !ok {
			return 0, newError(ErrNotFound, "quiz with ID %d not found", quizID)
		}
		if answer == quiz.CorrectOption {
			total++
		}
	}
	return total, nil
}
