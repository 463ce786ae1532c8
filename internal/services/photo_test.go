package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Ajayrajc1998/wedding/internal/flags"
	"github.com/Ajayrajc1998/wedding/internal/models"
	"github.com/Ajayrajc1998/wedding/internal/testutil"
)

func newPhotoService(t *testing.T, enabled bool, cfg PhotoConfig) (*PhotoService, flags.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := flags.NewMemoryStore(flags.Snapshot{AllowPhotos: enabled})
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = 1 << 20
	}
	return NewPhotoService(db, store, cfg), store
}

func photoInput(filename string) PhotoInput {
	return PhotoInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "555",
		Filename:    filename,
		Data:        testutil.PNG,
	}
}

func TestUploadForbiddenWhenDisabled(t *testing.T) {
	s, _ := newPhotoService(t, false, PhotoConfig{})
	ctx := context.Background()

	for _, in := range []PhotoInput{photoInput("a.png"), {Filename: "", Data: nil}} {
		if _, err := s.Upload(ctx, in); !errors.Is(err, ErrForbidden) {
			t.Errorf("Upload(%q) error = %v, want ErrForbidden", in.Filename, err)
		}
	}
}

func TestUploadLimit(t *testing.T) {
	s, _ := newPhotoService(t, true, PhotoConfig{})
	ctx := context.Background()

	for i := 0; i < models.MaxPhotosPerUploader; i++ {
		res, err := s.Upload(ctx, photoInput(fmt.Sprintf("p%d.png", i)))
		if err != nil {
			t.Fatalf("upload %d error = %v", i, err)
		}
		if res.Filename != fmt.Sprintf("p%d.png", i) {
			t.Errorf("Filename = %q", res.Filename)
		}
	}

	_, err := s.Upload(ctx, photoInput("p5.png"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("6th upload error = %v, want ErrConflict", err)
	}

	other := photoInput("p5.png")
	other.FirstName = "Grace"
	if _, err := s.Upload(ctx, other); err != nil {
		t.Errorf("other uploader blocked: %v", err)
	}
}

func TestUploadDuplicateFilename(t *testing.T) {
	s, _ := newPhotoService(t, true, PhotoConfig{})
	ctx := context.Background()

	if _, err := s.Upload(ctx, photoInput("same.jpg")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Upload(ctx, photoInput("same.jpg")); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate upload error = %v, want ErrConflict", err)
	}
}

func TestUploadValidation(t *testing.T) {
	s, _ := newPhotoService(t, true, PhotoConfig{MaxBytes: 8})
	ctx := context.Background()

	tests := []struct {
		name string
		in   PhotoInput
	}{
		{"no filename", PhotoInput{FirstName: "a", LastName: "b", Data: []byte("x")}},
		{"bad extension", PhotoInput{FirstName: "a", LastName: "b", Filename: "run.exe", Data: []byte("x")}},
		{"empty file", PhotoInput{FirstName: "a", LastName: "b", Filename: "x.png"}},
		{"too large", PhotoInput{FirstName: "a", LastName: "b", Filename: "x.png", Data: testutil.PNG}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Upload(ctx, tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("Upload() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestConcurrentUploadsRespectLimit(t *testing.T) {
	s, _ := newPhotoService(t, true, PhotoConfig{})
	ctx := context.Background()

	var ok atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Upload(ctx, photoInput(fmt.Sprintf("c%d.png", i))); err == nil {
				ok.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if ok.Load() != models.MaxPhotosPerUploader {
		t.Errorf("%d uploads succeeded, want %d", ok.Load(), models.MaxPhotosPerUploader)
	}
}

func TestListAndDownload(t *testing.T) {
	s, _ := newPhotoService(t, true, PhotoConfig{})
	ctx := context.Background()

	res, err := s.Upload(ctx, photoInput("one.png"))
	if err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Filename != "one.png" {
		t.Fatalf("List() = %+v", list)
	}
	if len(list[0].Data) != 0 {
		t.Error("List() loaded photo payload")
	}

	photo, err := s.Download(ctx, res.ID)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if string(photo.Data) != string(testutil.PNG) {
		t.Error("Download() payload mismatch")
	}
	if photo.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", photo.ContentType)
	}

	if _, err := s.Download(ctx, res.ID+1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Download(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListGatedPolicy(t *testing.T) {
	s, store := newPhotoService(t, false, PhotoConfig{ListGated: true})
	ctx := context.Background()

	if _, err := s.List(ctx); !errors.Is(err, ErrForbidden) {
		t.Fatalf("List() error = %v, want ErrForbidden", err)
	}
	if err := store.Set(ctx, flags.Photos, true); err != nil {
		t.Fatal(err)
	}
	if _, err := s.List(ctx); err != nil {
		t.Fatalf("List() after enabling error = %v", err)
	}
}

func TestDeletePhotoRemovesLegacyFile(t *testing.T) {
	dir := t.TempDir()
	s, _ := newPhotoService(t, true, PhotoConfig{LegacyDir: dir})
	ctx := context.Background()

	res, err := s.Upload(ctx, photoInput("legacy.png"))
	if err != nil {
		t.Fatal(err)
	}
	legacy := filepath.Join(dir, "legacy.png")
	if err := os.WriteFile(legacy, testutil.PNG, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(legacy); !os.IsNotExist(err) {
		t.Error("legacy file still present")
	}
	if err := s.Delete(ctx, res.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(absent) error = %v, want ErrNotFound", err)
	}
}

func TestDeletePhotoWithoutLegacyFile(t *testing.T) {
	s, _ := newPhotoService(t, true, PhotoConfig{LegacyDir: t.TempDir()})
	ctx := context.Background()

	res, err := s.Upload(ctx, photoInput("fresh.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestUploadRejectsNonImagePayload(t *testing.T) {
	s, _ := newPhotoService(t, true, PhotoConfig{})
	ctx := context.Background()

	for _, name := range []string{"cat.png", "cat.heic", "cat.jpg"} {
		in := photoInput(name)
		in.Data = []byte("<script>alert(document.domain)</script>")
		if _, err := s.Upload(ctx, in); !errors.Is(err, ErrValidation) {
			t.Errorf("Upload(%s with HTML) error = %v, want ErrValidation", name, err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("rejected uploads stored %d rows", len(list))
	}
}

func TestUploadTypeComesFromPayload(t *testing.T) {
	s, _ := newPhotoService(t, true, PhotoConfig{})
	ctx := context.Background()

	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")
	in := photoInput("named-as.png")
	in.Data = gif
	res, err := s.Upload(ctx, in)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	photo, err := s.Download(ctx, res.ID)
	if err != nil {
		t.Fatal(err)
	}
	if photo.ContentType != "image/gif" {
		t.Errorf("ContentType = %q, want image/gif", photo.ContentType)
	}
}

func TestDownloadNeverServesStoredNonImageType(t *testing.T) {
	s, _ := newPhotoService(t, true, PhotoConfig{})
	ctx := context.Background()

	row := models.UploadedPhoto{
		FirstName:   "Old",
		LastName:    "Row",
		PhoneNumber: "1",
		Filename:    "legacy.png",
		ContentType: "text/html",
		Size:        6,
		Data:        []byte("<html>"),
	}
	if err := s.db.Create(&row).Error; err != nil {
		t.Fatal(err)
	}

	photo, err := s.Download(ctx, row.ID)
	if err != nil {
		t.Fatal(err)
	}
	if photo.ContentType != "application/octet-stream" {
		t.Errorf("ContentType = %q, want application/octet-stream", photo.ContentType)
	}
}
