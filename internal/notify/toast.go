// Package notify implements the toast/notification sink the checkout
// flow reports through.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Level classifies a toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast is one notification shown to the shopper.
type Toast struct {
	ID      string `json:"id"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Recorder collects toasts until the presentation layer drains them.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

// NewRecorder creates an empty toast recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Success records a success toast.
func (r *Recorder) Success(message string) {
	r.add(LevelSuccess, message)
}

// Error records an error toast.
func (r *Recorder) Error(message string) {
	r.add(LevelError, message)
}

func (r *Recorder) add(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, Toast{
		ID:      uuid.New().String(),
		Level:   level,
		Message: message,
	})
}

// Drain returns the pending toasts and clears the queue.
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}
