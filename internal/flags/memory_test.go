package flags

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStoreInitialValues(t *testing.T) {
	s := NewMemoryStore(Snapshot{AllowPhotos: true})
	ctx := context.Background()

	snap, err := Read(ctx, s)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !snap.AllowPhotos || snap.AllowQuiz {
		t.Errorf("Read() = %+v, want photos on and quiz off", snap)
	}
}

func TestMemoryStoreSetIsVisible(t *testing.T) {
	s := NewMemoryStore(Snapshot{})
	ctx := context.Background()

	if err := s.Set(ctx, Quiz, true); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, Quiz)
	if err != nil || !got {
		t.Fatalf("Get(Quiz) = (%v, %v), want (true, nil)", got, err)
	}
	if photos, _ := s.Get(ctx, Photos); photos {
		t.Error("setting quiz must not touch photos")
	}

	if err := s.Set(ctx, Quiz, false); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := s.Get(ctx, Quiz); got {
		t.Error("Get(Quiz) = true after disabling")
	}
}

func TestMemoryStoreRejectsUnknownFlag(t *testing.T) {
	s := NewMemoryStore(Snapshot{})
	ctx := context.Background()

	if _, err := s.Get(ctx, Flag("music")); err == nil {
		t.Error("Get(unknown) succeeded")
	}
	if err := s.Set(ctx, Flag("music"), true); err == nil {
		t.Error("Set(unknown) succeeded")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(Snapshot{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(v bool) {
			defer wg.Done()
			_ = s.Set(ctx, Photos, v)
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			_, _ = s.Get(ctx, Photos)
		}()
	}
	wg.Wait()

	if err := s.Set(ctx, Photos, true); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := s.Get(ctx, Photos); !got {
		t.Error("last write lost")
	}
}
