package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// UserHandler handles user management HTTP requests. Every route is
// admin-only; the service layer enforces that.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /users requests.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	caller, ok := getCallerFromContext(r)
	if !ok {
		log.Warn("caller not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return
	}

	users, err := h.userService.List(r.Context(), caller)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, userToResponse(user))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// DeleteUser handles DELETE /users/{id} requests. Deleting a user does
// not touch their tasks; task references to the removed account stay
// in place and resolve to empty name and email.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	caller, userID, ok := handleCallerAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), caller, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("user deleted",
		slog.String("user_id", userID.String()),
		slog.String("caller_id", caller.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
