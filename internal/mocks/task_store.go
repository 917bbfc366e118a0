package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, task *domain.Task) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	GetByIDWithRefsFn  func(ctx context.Context, id uuid.UUID) (*domain.TaskWithRefs, error)
	UpdateFn           func(ctx context.Context, id uuid.UUID, update store.TaskUpdate) error
	DeleteFn           func(ctx context.Context, id uuid.UUID) error
	ListFn             func(ctx context.Context, filter store.TaskFilter, limit, offset int) ([]*domain.TaskWithRefs, error)
	CountFn            func(ctx context.Context, filter store.TaskFilter) (int, error)

	// Data for the default implementation. Tasks preserves insertion
	// order so listing ties on created_at stay stable. Users backs the
	// reference resolution; a missing entry resolves to a zero UserRef,
	// mirroring a dangling reference after user deletion.
	Tasks []*domain.Task
	Users map[uuid.UUID]*domain.User
}

// Verify interface compliance at compile time.
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Users: make(map[uuid.UUID]*domain.User),
	}
}

// Add seeds a task into the default in-memory slice.
func (m *MockTaskStore) Add(task *domain.Task) {
	m.Tasks = append(m.Tasks, task)
}

// AddUser seeds a user for reference resolution.
func (m *MockTaskStore) AddUser(user *domain.User) {
	m.Users[user.ID] = user
}

func (m *MockTaskStore) resolveRef(id uuid.UUID) domain.UserRef {
	if user, ok := m.Users[id]; ok {
		return domain.UserRef{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	// Dangling reference: keep the ID, name and email stay empty
	return domain.UserRef{ID: id}
}

func (m *MockTaskStore) withRefs(task *domain.Task) *domain.TaskWithRefs {
	return &domain.TaskWithRefs{
		Task:     *task,
		Assignee: m.resolveRef(task.AssignedTo),
		Creator:  m.resolveRef(task.CreatedBy),
	}
}

func matchesFilter(task *domain.Task, filter store.TaskFilter) bool {
	return filter.AssignedTo == nil || task.AssignedTo == *filter.AssignedTo
}

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if err := task.Validate(); err != nil {
		return err
	}
	m.Tasks = append(m.Tasks, task)
	return nil
}

// GetByID implements the TaskStore interface.
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, task := range m.Tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// GetByIDWithRefs implements the TaskStore interface.
func (m *MockTaskStore) GetByIDWithRefs(ctx context.Context, id uuid.UUID) (*domain.TaskWithRefs, error) {
	if m.GetByIDWithRefsFn != nil {
		return m.GetByIDWithRefsFn(ctx, id)
	}

	for _, task := range m.Tasks {
		if task.ID == id {
			return m.withRefs(task), nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// Update implements the TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, id uuid.UUID, update store.TaskUpdate) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	for _, task := range m.Tasks {
		if task.ID != id {
			continue
		}
		if update.Title != nil {
			task.Title = *update.Title
		}
		if update.Description != nil {
			task.Description = *update.Description
		}
		if update.DueDate != nil {
			task.DueDate = *update.DueDate
		}
		if update.Priority != nil {
			task.Priority = *update.Priority
		}
		if update.Status != nil {
			task.Status = *update.Status
		}
		if update.AssignedTo != nil {
			task.AssignedTo = *update.AssignedTo
		}
		task.UpdatedAt = time.Now().UTC()
		return nil
	}
	return store.ErrTaskNotFound
}

// Delete implements the TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for i, task := range m.Tasks {
		if task.ID == id {
			m.Tasks = append(m.Tasks[:i], m.Tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// List implements the TaskStore interface. The default implementation
// sorts by creation time descending with a stable sort, so ties keep
// their insertion order.
func (m *MockTaskStore) List(
	ctx context.Context,
	filter store.TaskFilter,
	limit, offset int,
) ([]*domain.TaskWithRefs, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, limit, offset)
	}

	var matched []*domain.Task
	for _, task := range m.Tasks {
		if matchesFilter(task, filter) {
			matched = append(matched, task)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return []*domain.TaskWithRefs{}, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}

	result := make([]*domain.TaskWithRefs, 0, len(matched))
	for _, task := range matched {
		result = append(result, m.withRefs(task))
	}
	return result, nil
}

// Count implements the TaskStore interface.
func (m *MockTaskStore) Count(ctx context.Context, filter store.TaskFilter) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}

	count := 0
	for _, task := range m.Tasks {
		if matchesFilter(task, filter) {
			count++
		}
	}
	return count, nil
}
