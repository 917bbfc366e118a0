// Package authz implements the access-control rules for tasks and
// user administration. It is a pure decision layer: every function
// operates on already-fetched records, performs no I/O and has no
// side effects. Callers fetch the record first (surfacing not-found
// before authorization is ever evaluated) and then consult this
// package before mutating anything.
//
// Two distinct ownership keys govern task permissions: the assignee
// for viewing and updating, and the creator for deletion. These are
// kept as separately named checks on purpose; collapsing them would
// silently change the authorization semantics.
package authz

import (
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// Deny errors. Each carries the user-facing reason for the refusal and
// is matched with errors.Is at the API boundary.
var (
	// ErrNotTaskViewer indicates the caller is neither an admin nor the
	// task's assignee and may not view it.
	ErrNotTaskViewer = errors.New("not authorized to view this task")

	// ErrNotTaskEditor indicates the caller is neither an admin nor the
	// task's assignee and may not update it.
	ErrNotTaskEditor = errors.New("not authorized to update this task")

	// ErrNotTaskCreator indicates the caller is neither an admin nor the
	// task's creator and may not delete it.
	ErrNotTaskCreator = errors.New("not authorized to delete this task")

	// ErrAdminOnly indicates the operation is restricted to admins.
	ErrAdminOnly = errors.New("admin access required")

	// ErrSelfDelete indicates an admin attempted to delete their own
	// account, which is never allowed.
	ErrSelfDelete = errors.New("cannot delete yourself")
)

// IsDenied reports whether err is any authorization denial from this
// package.
func IsDenied(err error) bool {
	return errors.Is(err, ErrNotTaskViewer) ||
		errors.Is(err, ErrNotTaskEditor) ||
		errors.Is(err, ErrNotTaskCreator) ||
		errors.Is(err, ErrAdminOnly) ||
		errors.Is(err, ErrSelfDelete)
}

// Caller is the resolved identity of the requesting user, produced by
// the authentication middleware and trusted as-is by the services.
type Caller struct {
	ID   uuid.UUID
	Role domain.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// ResolveAssignee applies the assignment rule for task creation: a
// non-admin caller always has new tasks pinned to themselves, whatever
// assignee the request supplied. Admins may assign to anyone; an
// unspecified assignee (uuid.Nil) defaults to the caller either way.
func ResolveAssignee(caller Caller, requested uuid.UUID) uuid.UUID {
	if !caller.IsAdmin() || requested == uuid.Nil {
		return caller.ID
	}
	return requested
}

// CanViewTask checks whether the caller may read the task: admins see
// everything, other callers only tasks assigned to them.
// Returns nil on allow, ErrNotTaskViewer on deny.
func CanViewTask(caller Caller, task *domain.Task) error {
	if caller.IsAdmin() || task.AssignedTo == caller.ID {
		return nil
	}
	return ErrNotTaskViewer
}

// CanUpdateTask checks whether the caller may mutate the task's fields,
// status or priority. The rule matches CanViewTask (admin or assignee)
// but is a distinct check with a distinct denial reason.
// Returns nil on allow, ErrNotTaskEditor on deny.
func CanUpdateTask(caller Caller, task *domain.Task) error {
	if caller.IsAdmin() || task.AssignedTo == caller.ID {
		return nil
	}
	return ErrNotTaskEditor
}

// CanDeleteTask checks whether the caller may delete the task. Unlike
// viewing and updating, deletion is keyed on the creator: an assignee
// who did not create the task may not delete it.
// Returns nil on allow, ErrNotTaskCreator on deny.
func CanDeleteTask(caller Caller, task *domain.Task) error {
	if caller.IsAdmin() || task.CreatedBy == caller.ID {
		return nil
	}
	return ErrNotTaskCreator
}

// RequireAdmin checks that the caller holds the admin role. Used for
// the user-administration operations (list users, delete user).
// Returns nil on allow, ErrAdminOnly on deny.
func RequireAdmin(caller Caller) error {
	if caller.IsAdmin() {
		return nil
	}
	return ErrAdminOnly
}

// CanDeleteUser checks whether the caller may delete the target user:
// the caller must be an admin and must not be deleting their own
// account. The self-delete rule holds independently of role.
// Returns nil on allow, ErrAdminOnly or ErrSelfDelete on deny.
func CanDeleteUser(caller Caller, targetID uuid.UUID) error {
	if err := RequireAdmin(caller); err != nil {
		return err
	}
	if targetID == caller.ID {
		return ErrSelfDelete
	}
	return nil
}
