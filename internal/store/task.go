package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskFilter narrows which tasks a listing or count operation sees.
// A nil AssignedTo matches every task (admin visibility); a non-nil
// value restricts the result to tasks assigned to that user.
type TaskFilter struct {
	AssignedTo *uuid.UUID
}

// TaskUpdate describes a partial mutation of a task. Nil fields are
// left unchanged. The store refreshes updated_at on every update
// regardless of which fields are supplied.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *domain.TaskPriority
	Status      *domain.TaskStatus
	AssignedTo  *uuid.UUID
}

// IsEmpty reports whether the update supplies no fields.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.DueDate == nil &&
		u.Priority == nil && u.Status == nil && u.AssignedTo == nil
}

// TaskStore defines the interface for task data persistence.
//
// Read paths that return TaskWithRefs resolve the assignee and creator
// references to name and email in the store, so callers never hand raw
// identifiers to consumers. A reference to a deleted user resolves to
// a zero-valued UserRef.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID without resolving
	// references. Used by authorization checks that only need the
	// relational fields.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetByIDWithRefs retrieves a task by its unique ID with the
	// assignee and creator references resolved.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByIDWithRefs(ctx context.Context, id uuid.UUID) (*domain.TaskWithRefs, error)

	// Update applies a partial mutation to an existing task and
	// refreshes its updated_at timestamp.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id uuid.UUID, update TaskUpdate) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves tasks matching the filter with references
	// resolved, ordered by creation time descending (ties broken by
	// ID for a stable order), limited to limit rows starting at
	// offset. Returns an empty slice when no tasks match.
	List(ctx context.Context, filter TaskFilter, limit, offset int) ([]*domain.TaskWithRefs, error)

	// Count returns the number of tasks matching the filter.
	Count(ctx context.Context, filter TaskFilter) (int, error)
}
