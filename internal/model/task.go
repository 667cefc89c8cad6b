package model

import (
	"time"

	"github.com/google/uuid"
)

// FetchTaskIDPrefix prefixes every generated fetch task ID
const FetchTaskIDPrefix = "fetch-"

// FetchTask represents a single LoadImage invocation
type FetchTask struct {
	ID         string
	Status     FetchStatus
	Reference  ImageReference // set once completed
	LastError  string         // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewFetchTask creates a pending fetch task with a fresh ID
func NewFetchTask() *FetchTask {
	return &FetchTask{
		ID:        FetchTaskIDPrefix + uuid.NewString(),
		Status:    FetchStatusPending,
		StartedAt: time.Now(),
	}
}

// Complete marks the task as completed with the received reference
func (ft *FetchTask) Complete(ref ImageReference) {
	ft.Status = FetchStatusCompleted
	ft.Reference = ref
	ft.LastError = ""
	ft.FinishedAt = time.Now()
}

// Fail marks the task as failed
func (ft *FetchTask) Fail(err error) {
	ft.Status = FetchStatusError
	if err != nil {
		ft.LastError = err.Error()
	}
	ft.FinishedAt = time.Now()
}

// Duration returns how long the fetch took, or zero while it is still active
func (ft *FetchTask) Duration() time.Duration {
	if ft.FinishedAt.IsZero() || ft.StartedAt.IsZero() {
		return 0
	}
	return ft.FinishedAt.Sub(ft.StartedAt)
}

// Copy returns a detached copy safe to hand to other goroutines
func (ft *FetchTask) Copy() *FetchTask {
	c := *ft
	return &c
}
