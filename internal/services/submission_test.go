package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Ajayrajc1998/wedding/internal/flags"
	"github.com/Ajayrajc1998/wedding/internal/models"
	"github.com/Ajayrajc1998/wedding/internal/testutil"
)

func TestSubmitScoresAndPersists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	quizzes := NewQuizService(db, flags.NewMemoryStore(flags.Snapshot{}), false)
	s := NewSubmissionService(db, NewScoringService())
	ctx := context.Background()

	q1, err := quizzes.Create(ctx, sampleQuiz)
	if err != nil {
		t.Fatal(err)
	}
	second := sampleQuiz
	second.CorrectOption = "A"
	q2, err := quizzes.Create(ctx, second)
	if err != nil {
		t.Fatal(err)
	}

	result, err := s.Submit(ctx, SubmissionInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "1",
		Answers:     map[uint]string{q1.ID: "B", q2.ID: "C"},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if result.ID == 0 {
		t.Error("Submit() did not assign an id")
	}
	if result.TotalMarks != 1 {
		t.Errorf("TotalMarks = %d, want 1", result.TotalMarks)
	}

	var stored models.QuizParticipant
	if err := db.First(&stored, result.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.SubmittedAnswers[q1.ID] != "B" || stored.SubmittedAnswers[q2.ID] != "C" {
		t.Errorf("stored answers = %v", stored.SubmittedAnswers)
	}
	if stored.SubmittedAt.IsZero() {
		t.Error("submitted_at not set")
	}
}

func TestSubmitUnknownQuizPersistsNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	quizzes := NewQuizService(db, flags.NewMemoryStore(flags.Snapshot{}), false)
	s := NewSubmissionService(db, NewScoringService())
	ctx := context.Background()

	q, err := quizzes.Create(ctx, sampleQuiz)
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Submit(ctx, SubmissionInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Answers:   map[uint]string{q.ID: "B", q.ID + 100: "A"},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Submit() error = %v, want ErrNotFound", err)
	}

	var count int64
	db.Model(&models.QuizParticipant{}).Count(&count)
	if count != 0 {
		t.Errorf("%d quiz participants persisted, want 0", count)
	}
}

func TestRoundTripIncrementsByOne(t *testing.T) {
	db := testutil.SetupTestDB(t)
	quizzes := NewQuizService(db, flags.NewMemoryStore(flags.Snapshot{}), false)
	s := NewSubmissionService(db, NewScoringService())
	ctx := context.Background()

	base, err := quizzes.Create(ctx, QuizInput{Question: "q0", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectOption: "A"})
	if err != nil {
		t.Fatal(err)
	}
	without, err := s.Submit(ctx, SubmissionInput{FirstName: "x", LastName: "y", Answers: map[uint]string{base.ID: "A"}})
	if err != nil {
		t.Fatal(err)
	}

	q, err := quizzes.Create(ctx, QuizInput{Question: "q1", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectOption: "B"})
	if err != nil {
		t.Fatal(err)
	}
	with, err := s.Submit(ctx, SubmissionInput{FirstName: "x", LastName: "y", Answers: map[uint]string{base.ID: "A", q.ID: "B"}})
	if err != nil {
		t.Fatal(err)
	}

	if with.TotalMarks-without.TotalMarks != 1 {
		t.Errorf("marks went from %d to %d, want +1", without.TotalMarks, with.TotalMarks)
	}
}

func TestListResultsOrdering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	quizzes := NewQuizService(db, flags.NewMemoryStore(flags.Snapshot{}), false)
	s := NewSubmissionService(db, NewScoringService())
	ctx := context.Background()

	q, err := quizzes.Create(ctx, sampleQuiz)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(ctx, SubmissionInput{FirstName: "low", LastName: "score", Answers: map[uint]string{q.ID: "A"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(ctx, SubmissionInput{FirstName: "high", LastName: "score", Answers: map[uint]string{q.ID: "B"}}); err != nil {
		t.Fatal(err)
	}

	results, err := s.ListResults(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("ListResults() returned %d, want 2", len(results))
	}
	if results[0].FirstName != "high" {
		t.Errorf("first result = %s, want high", results[0].FirstName)
	}
}
