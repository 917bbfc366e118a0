package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/authz"
)

// getCallerFromContext extracts the authenticated caller from the
// request context. The caller is placed in the context by the
// authentication middleware.
func getCallerFromContext(r *http.Request) (authz.Caller, bool) {
	caller, ok := r.Context().Value(shared.CallerContextKey).(authz.Caller)
	if !ok || caller.ID == uuid.Nil {
		return authz.Caller{}, false
	}
	return caller, true
}

// getPathUUID extracts a UUID from the URL path parameters.
// Returns a validation error if the parameter is missing or malformed.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handleCallerAndPathUUID extracts both the caller from the context and
// a UUID from the path parameters. It writes an error response and
// returns ok=false if either extraction fails.
func handleCallerAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (authz.Caller, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	caller, ok := getCallerFromContext(r)
	if !ok {
		log.Warn("caller not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return authz.Caller{}, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		log.Warn("invalid "+paramName,
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return authz.Caller{}, uuid.Nil, false
	}

	return caller, pathID, true
}

// getPageParams reads the page and limit query parameters. Missing
// or malformed values fall back to defaults downstream; the service
// normalizes non-positive values.
func getPageParams(r *http.Request) (page, pageSize int) {
	page = parseIntParam(r.URL.Query().Get("page"))
	pageSize = parseIntParam(r.URL.Query().Get("limit"))
	return page, pageSize
}

// parseIntParam parses a decimal query parameter, returning 0 for
// anything that is not a valid integer.
func parseIntParam(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
