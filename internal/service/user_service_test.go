package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/authz"
	"github.com/phrazzld/taskboard-api/internal/store"
)

func TestListUsersAdminOnly(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	admin := newTestUser(t, "admin", domain.RoleAdmin)
	alice := newTestUser(t, "alice", domain.RoleUser)
	userStore.Add(admin)
	userStore.Add(alice)

	svc := service.NewUserService(userStore, nil)

	users, err := svc.List(context.Background(), asCaller(admin))
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.List(context.Background(), asCaller(alice))
	assert.ErrorIs(t, err, authz.ErrAdminOnly)
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	admin := newTestUser(t, "admin", domain.RoleAdmin)
	alice := newTestUser(t, "alice", domain.RoleUser)
	userStore.Add(admin)
	userStore.Add(alice)

	svc := service.NewUserService(userStore, nil)
	ctx := context.Background()

	// Non-admins may not delete users at all, themselves included.
	assert.ErrorIs(t, svc.Delete(ctx, asCaller(alice), admin.ID), authz.ErrAdminOnly)
	assert.ErrorIs(t, svc.Delete(ctx, asCaller(alice), alice.ID), authz.ErrAdminOnly)

	// Admin may never delete their own account.
	assert.ErrorIs(t, svc.Delete(ctx, asCaller(admin), admin.ID), authz.ErrSelfDelete)

	// A missing user surfaces as not-found before the self-delete rule.
	assert.ErrorIs(t, svc.Delete(ctx, asCaller(admin), uuid.New()), store.ErrUserNotFound)

	// Admin deletes another user.
	require.NoError(t, svc.Delete(ctx, asCaller(admin), alice.ID))
	_, err := userStore.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestDeleteUserLeavesTaskReferencesDangling(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	taskStore := mocks.NewMockTaskStore()
	admin := newTestUser(t, "admin", domain.RoleAdmin)
	alice := newTestUser(t, "alice", domain.RoleUser)
	userStore.Add(admin)
	userStore.Add(alice)
	taskStore.AddUser(admin)
	taskStore.AddUser(alice)

	task := seedTask(t, taskStore, alice, admin, time.Now().UTC())

	userSvc := service.NewUserService(userStore, nil)
	taskSvc := service.NewTaskService(taskStore, nil)
	ctx := context.Background()

	require.NoError(t, userSvc.Delete(ctx, asCaller(admin), alice.ID))
	// Mirror the store-level behavior: the task store resolves against
	// its own user view, from which alice is now gone.
	delete(taskStore.Users, alice.ID)

	// The task survives with its assignee reference intact but
	// unresolvable: ID kept, name and email empty.
	got, err := taskSvc.GetByID(ctx, asCaller(admin), task.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.AssignedTo)
	assert.Equal(t, alice.ID, got.Assignee.ID)
	assert.Empty(t, got.Assignee.Name)
	assert.Empty(t, got.Assignee.Email)
}
