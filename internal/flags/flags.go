// Package flags holds the admin feature switches: whether guests may upload
// photos and whether the quiz is visible.
package flags

import (
	"context"
	"fmt"
)

type Flag string

const (
	Photos Flag = "photos"
	Quiz   Flag = "quiz"
)

func (f Flag) Valid() bool {
	return f == Photos || f == Quiz
}

type Store interface {
	Get(ctx context.Context, f Flag) (bool, error)
	Set(ctx context.Context, f Flag, value bool) error
}

type Snapshot struct {
	AllowPhotos bool `json:"allow_photos"`
	AllowQuiz   bool `json:"allow_quiz"`
}

func Read(ctx context.Context, s Store) (Snapshot, error) {
	photos, err := s.Get(ctx, Photos)
	if err != nil {
		return Snapshot{}, err
	}
	quiz, err := s.Get(ctx, Quiz)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{AllowPhotos: photos, AllowQuiz: quiz}, nil
}

func errUnknown(f Flag) error {
	return fmt.Errorf("unknown flag %q", string(f))
}
