package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the completion state of a task.
type TaskStatus string

// Possible task status values. Status is freely settable in either
// direction; a completed task can be reopened.
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskPriority represents the urgency label of a task. The three
// labels are unordered; no transition restriction applies.
type TaskPriority string

// Possible task priority values.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Common validation errors for Task.
var (
	ErrEmptyTaskID          = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle       = errors.New("task title cannot be empty")
	ErrEmptyTaskDescription = errors.New("task description cannot be empty")
	ErrEmptyTaskDueDate     = errors.New("task due date cannot be empty")
	ErrEmptyTaskAssignee    = errors.New("task assignee cannot be empty")
	ErrEmptyTaskCreator     = errors.New("task creator cannot be empty")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
)

// Task represents a unit of work assigned to exactly one user.
// AssignedTo governs who may read and update the task; CreatedBy is
// set once at creation and governs who may delete it. Both reference
// users by ID; the references are not revalidated after creation, so
// deleting a user may leave tasks pointing at a removed account.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     time.Time    `json:"due_date"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	AssignedTo  uuid.UUID    `json:"assigned_to"`
	CreatedBy   uuid.UUID    `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// UserRef is a resolved reference to a user, carried on tasks returned
// from read paths so consumers never have to join raw identifiers
// themselves. When the referenced user has been deleted, Name and
// Email are empty.
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// TaskWithRefs is a Task with its assignee and creator references
// resolved to name and email.
type TaskWithRefs struct {
	Task
	Assignee UserRef `json:"assigned_to_user"`
	Creator  UserRef `json:"created_by_user"`
}

// NewTask creates a new Task assigned to assignedTo and created by
// createdBy. It generates a new UUID for the task ID, defaults the
// priority to low when empty, sets the status to pending and sets the
// creation/update timestamps.
// Returns an error if validation fails.
func NewTask(
	title, description string,
	dueDate time.Time,
	priority TaskPriority,
	assignedTo, createdBy uuid.UUID,
) (*Task, error) {
	if priority == "" {
		priority = TaskPriorityLow
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      TaskStatusPending,
		AssignedTo:  assignedTo,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}

	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyTaskDescription
	}

	if t.DueDate.IsZero() {
		return ErrEmptyTaskDueDate
	}

	if !IsValidTaskPriority(t.Priority) {
		return ErrInvalidTaskPriority
	}

	if !IsValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	if t.AssignedTo == uuid.Nil {
		return ErrEmptyTaskAssignee
	}

	if t.CreatedBy == uuid.Nil {
		return ErrEmptyTaskCreator
	}

	return nil
}

// IsValidTaskStatus checks if the given status is a valid TaskStatus.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// IsValidTaskPriority checks if the given priority is a valid TaskPriority.
func IsValidTaskPriority(priority TaskPriority) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}
