package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Ajayrajc1998/wedding/internal/flags"
	"github.com/Ajayrajc1998/wedding/internal/testutil"
)

var sampleQuiz = QuizInput{
	Question:      "Where did the couple meet?",
	OptionA:       "School",
	OptionB:       "Work",
	OptionC:       "A concert",
	OptionD:       "Online",
	CorrectOption: "B",
}

func TestQuizCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := NewQuizService(db, flags.NewMemoryStore(flags.Snapshot{}), false)
	ctx := context.Background()

	quiz, err := s.Create(ctx, sampleQuiz)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if quiz.ID == 0 || quiz.CreatedAt.IsZero() {
		t.Errorf("Create() = %+v, want id and created_at", quiz)
	}

	in := sampleQuiz
	in.Question = "Where was the first date?"
	in.OptionD = "Paris"
	in.CorrectOption = "d"
	updated, err := s.Update(ctx, quiz.ID, in)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Question != in.Question || updated.OptionD != "Paris" || updated.CorrectOption != "D" {
		t.Errorf("Update() = %+v, want overwritten fields", updated)
	}

	got, err := s.GetByID(ctx, quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CorrectOption != "D" {
		t.Errorf("CorrectOption = %q, want D", got.CorrectOption)
	}

	if err := s.Delete(ctx, quiz.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, quiz.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(absent) error = %v, want ErrNotFound", err)
	}
	if _, err := s.Update(ctx, quiz.ID, sampleQuiz); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(absent) error = %v, want ErrNotFound", err)
	}
}

func TestQuizRejectsUnknownCorrectOption(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := NewQuizService(db, flags.NewMemoryStore(flags.Snapshot{}), false)

	in := sampleQuiz
	in.CorrectOption = "E"
	if _, err := s.Create(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Errorf("Create() error = %v, want ErrValidation", err)
	}
}

func TestListVisiblePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("open listing ignores flag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		s := NewQuizService(db, flags.NewMemoryStore(flags.Snapshot{}), false)
		if _, err := s.Create(ctx, sampleQuiz); err != nil {
			t.Fatal(err)
		}
		list, err := s.ListVisible(ctx)
		if err != nil {
			t.Fatalf("ListVisible() error = %v", err)
		}
		if len(list) != 1 {
			t.Errorf("ListVisible() returned %d, want 1", len(list))
		}
	})

	t.Run("gated listing follows flag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := flags.NewMemoryStore(flags.Snapshot{})
		s := NewQuizService(db, store, true)

		if _, err := s.ListVisible(ctx); !errors.Is(err, ErrForbidden) {
			t.Fatalf("ListVisible() error = %v, want ErrForbidden", err)
		}
		if err := store.Set(ctx, flags.Quiz, true); err != nil {
			t.Fatal(err)
		}
		if _, err := s.ListVisible(ctx); err != nil {
			t.Fatalf("ListVisible() after enabling error = %v", err)
		}
	})
}
