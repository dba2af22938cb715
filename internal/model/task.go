package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStore defines persistence operations for tasks.
type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Task represents a stored task entity. OwnerID is stamped server-side from
// the authenticated identity and is never taken from the client.
type Task struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Priority    TaskPriority
	Status      TaskStatus
	Deadline    string
	Owner       string
	CreatedAt   time.Time
}

// TaskPriority enumerates task priorities.
type TaskPriority string

const (
	// PriorityHigh is an urgent task.
	PriorityHigh TaskPriority = "High"
	// PriorityMedium is a regular task.
	PriorityMedium TaskPriority = "Medium"
	// PriorityLow is a background task.
	PriorityLow TaskPriority = "Low"
)

// TaskStatus enumerates workflow states.
type TaskStatus string

const (
	// StatusPending is a task not yet done.
	StatusPending TaskStatus = "Pending"
	// StatusCompleted is a finished task.
	StatusCompleted TaskStatus = "Completed"
)

// CreateTaskParams contains parameters to create a task.
type CreateTaskParams struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	Priority    TaskPriority
	Status      TaskStatus
	Deadline    string
	Owner       string
}

// UpdateTaskParams contains the partial payload of a task update. Nil fields
// keep the stored value.
type UpdateTaskParams struct {
	Name        *string
	Description *string
	Priority    *TaskPriority
	Status      *TaskStatus
	Deadline    *string
	Owner       *string
}
