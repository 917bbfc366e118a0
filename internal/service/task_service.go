package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/authz"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// DefaultPageSize is the number of tasks per page when the caller
// supplies no page size or a non-positive one.
const DefaultPageSize = 6

// TaskPage is the result of a paginated task listing. Page echoes the
// requested page unclamped; a page past the end yields an empty Tasks
// slice with otherwise valid metadata.
type TaskPage struct {
	Tasks      []*domain.TaskWithRefs
	Page       int
	TotalPages int
	TotalCount int
}

// CreateTaskInput carries the fields for a new task. AssignedTo may be
// uuid.Nil to default to the caller; for non-admin callers it is
// ignored and forced to the caller regardless.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    domain.TaskPriority
	AssignedTo  uuid.UUID
}

// TaskService provides task lifecycle operations with per-call
// authorization. Mutations follow fetch, authorize, mutate, re-fetch
// with resolved references.
type TaskService interface {
	// Create validates the input, applies the assignment rule for the
	// caller's role and stores the new task.
	// Returns the created task with references resolved.
	Create(ctx context.Context, caller authz.Caller, input CreateTaskInput) (*domain.TaskWithRefs, error)

	// List returns the page of tasks visible to the caller, newest
	// first. Admins see all tasks; other callers only tasks assigned
	// to them. Page is 1-based; pageSize falls back to DefaultPageSize
	// when non-positive.
	List(ctx context.Context, caller authz.Caller, page, pageSize int) (*TaskPage, error)

	// GetByID returns a single task with references resolved.
	// Returns store.ErrTaskNotFound if the task does not exist,
	// authz.ErrNotTaskViewer if the caller may not see it.
	GetByID(ctx context.Context, caller authz.Caller, taskID uuid.UUID) (*domain.TaskWithRefs, error)

	// Update applies a partial field update to a task. A supplied
	// assignee is honored as-is; unlike creation there is no pinning.
	// An update carrying no fields is rejected as a validation error.
	// Returns store.ErrTaskNotFound or authz.ErrNotTaskEditor.
	Update(ctx context.Context, caller authz.Caller, taskID uuid.UUID, update store.TaskUpdate) (*domain.TaskWithRefs, error)

	// SetStatus updates only the task's status. Both directions are
	// allowed; a completed task can be reopened.
	SetStatus(ctx context.Context, caller authz.Caller, taskID uuid.UUID, status domain.TaskStatus) (*domain.TaskWithRefs, error)

	// SetPriority updates only the task's priority.
	SetPriority(ctx context.Context, caller authz.Caller, taskID uuid.UUID, priority domain.TaskPriority) (*domain.TaskWithRefs, error)

	// Delete removes a task permanently. Authorization is keyed on the
	// creator, not the assignee.
	// Returns store.ErrTaskNotFound or authz.ErrNotTaskCreator.
	Delete(ctx context.Context, caller authz.Caller, taskID uuid.UUID) error
}

// Verify interface compliance at compile time.
var _ TaskService = (*taskServiceImpl)(nil)

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService implementation.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) TaskService {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	caller authz.Caller,
	input CreateTaskInput,
) (*domain.TaskWithRefs, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	assignee := authz.ResolveAssignee(caller, input.AssignedTo)

	task, err := domain.NewTask(
		input.Title,
		input.Description,
		input.DueDate,
		input.Priority,
		assignee,
		caller.ID,
	)
	if err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("caller_id", caller.ID.String()))
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("caller_id", caller.ID.String()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	created, err := s.taskStore.GetByIDWithRefs(ctx, task.ID)
	if err != nil {
		log.Error("failed to re-fetch created task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, fmt.Errorf("failed to load created task: %w", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("assigned_to", task.AssignedTo.String()),
		slog.String("created_by", task.CreatedBy.String()))
	return created, nil
}

// List implements TaskService.List. It computes the caller's visible
// subset and the pagination envelope in one pass: the same filter
// drives both the page query and the total count.
func (s *taskServiceImpl) List(
	ctx context.Context,
	caller authz.Caller,
	page, pageSize int,
) (*TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	filter := store.TaskFilter{}
	if !caller.IsAdmin() {
		callerID := caller.ID
		filter.AssignedTo = &callerID
	}

	offset := (page - 1) * pageSize

	tasks, err := s.taskStore.List(ctx, filter, pageSize, offset)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("caller_id", caller.ID.String()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	total, err := s.taskStore.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()),
			slog.String("caller_id", caller.ID.String()))
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	// ceil(total / pageSize); zero when there are no tasks at all
	totalPages := (total + pageSize - 1) / pageSize

	log.Debug("listed tasks",
		slog.String("caller_id", caller.ID.String()),
		slog.Int("page", page),
		slog.Int("page_size", pageSize),
		slog.Int("returned", len(tasks)),
		slog.Int("total", total))

	return &TaskPage{
		Tasks:      tasks,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

// GetByID implements TaskService.GetByID.
func (s *taskServiceImpl) GetByID(
	ctx context.Context,
	caller authz.Caller,
	taskID uuid.UUID,
) (*domain.TaskWithRefs, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByIDWithRefs(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := authz.CanViewTask(caller, &task.Task); err != nil {
		log.Warn("task view denied",
			slog.String("caller_id", caller.ID.String()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	return task, nil
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	caller authz.Caller,
	taskID uuid.UUID,
	update store.TaskUpdate,
) (*domain.TaskWithRefs, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Fetch first: a missing task surfaces not-found before any
	// authorization outcome.
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := authz.CanUpdateTask(caller, task); err != nil {
		log.Warn("task update denied",
			slog.String("caller_id", caller.ID.String()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	if update.IsEmpty() {
		return nil, domain.NewValidationError("update", "no fields supplied", domain.ErrValidation)
	}
	if update.Status != nil && !domain.IsValidTaskStatus(*update.Status) {
		return nil, domain.ErrInvalidTaskStatus
	}
	if update.Priority != nil && !domain.IsValidTaskPriority(*update.Priority) {
		return nil, domain.ErrInvalidTaskPriority
	}

	if err := s.taskStore.Update(ctx, taskID, update); err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.taskStore.GetByIDWithRefs(ctx, taskID)
	if err != nil {
		log.Error("failed to re-fetch updated task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, fmt.Errorf("failed to load updated task: %w", err)
	}

	log.Info("task updated",
		slog.String("task_id", taskID.String()),
		slog.String("caller_id", caller.ID.String()))
	return updated, nil
}

// SetStatus implements TaskService.SetStatus. It routes through the
// general update path; the endpoint exists separately because the UI
// exposes status as a standalone control, not because the access rule
// differs.
func (s *taskServiceImpl) SetStatus(
	ctx context.Context,
	caller authz.Caller,
	taskID uuid.UUID,
	status domain.TaskStatus,
) (*domain.TaskWithRefs, error) {
	return s.Update(ctx, caller, taskID, store.TaskUpdate{Status: &status})
}

// SetPriority implements TaskService.SetPriority. Same shape as
// SetStatus.
func (s *taskServiceImpl) SetPriority(
	ctx context.Context,
	caller authz.Caller,
	taskID uuid.UUID,
	priority domain.TaskPriority,
) (*domain.TaskWithRefs, error) {
	return s.Update(ctx, caller, taskID, store.TaskUpdate{Priority: &priority})
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(
	ctx context.Context,
	caller authz.Caller,
	taskID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := authz.CanDeleteTask(caller, task); err != nil {
		log.Warn("task delete denied",
			slog.String("caller_id", caller.ID.String()),
			slog.String("task_id", taskID.String()))
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	log.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("caller_id", caller.ID.String()))
	return nil
}
