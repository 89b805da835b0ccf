package repository

import (
	"errors"
	"testing"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/checkout"
)

func TestInMemorySessionRepository(t *testing.T) {
	repo := NewInMemorySessionRepository()

	if _, err := repo.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrSessionNotFound", err)
	}

	s := &checkout.Session{ID: "abc"}
	if err := repo.Save(s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Get("abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != s {
		t.Error("Get() returned a different session")
	}

	if err := repo.Delete("abc"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get("abc"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrSessionNotFound", err)
	}

	// Deleting an absent session is not an error.
	if err := repo.Delete("abc"); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}
