package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/authz"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// UserService provides the admin-only user administration operations.
type UserService interface {
	// List returns all user accounts, admin-only.
	// Returns authz.ErrAdminOnly for non-admin callers.
	List(ctx context.Context, caller authz.Caller) ([]*domain.User, error)

	// Delete removes a user account permanently. Tasks referencing the
	// deleted user keep their dangling references; there is no cascade
	// and no reassignment.
	// Returns authz.ErrAdminOnly, authz.ErrSelfDelete or
	// store.ErrUserNotFound.
	Delete(ctx context.Context, caller authz.Caller, userID uuid.UUID) error
}

// Verify interface compliance at compile time.
var _ UserService = (*userServiceImpl)(nil)

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService implementation.
func NewUserService(userStore store.UserStore, logger *slog.Logger) UserService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// List implements UserService.List.
func (s *userServiceImpl) List(ctx context.Context, caller authz.Caller) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := authz.RequireAdmin(caller); err != nil {
		log.Warn("user listing denied",
			slog.String("caller_id", caller.ID.String()))
		return nil, err
	}

	users, err := s.userStore.List(ctx)
	if err != nil {
		log.Error("failed to list users",
			slog.String("error", err.Error()),
			slog.String("caller_id", caller.ID.String()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	log.Debug("listed users",
		slog.String("caller_id", caller.ID.String()),
		slog.Int("count", len(users)))
	return users, nil
}

// Delete implements UserService.Delete.
func (s *userServiceImpl) Delete(ctx context.Context, caller authz.Caller, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Role gate first, then existence, then the self-delete rule: a
	// missing user surfaces as not-found before the self-delete denial
	// is considered.
	if err := authz.RequireAdmin(caller); err != nil {
		log.Warn("user delete denied",
			slog.String("caller_id", caller.ID.String()),
			slog.String("target_id", userID.String()))
		return err
	}

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := authz.CanDeleteUser(caller, userID); err != nil {
		log.Warn("user delete denied",
			slog.String("caller_id", caller.ID.String()),
			slog.String("target_id", userID.String()))
		return err
	}

	if err := s.userStore.Delete(ctx, userID); err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("target_id", userID.String()))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Info("user deleted",
		slog.String("target_id", userID.String()),
		slog.String("caller_id", caller.ID.String()))
	return nil
}
