package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Role is the authenticated user's role
	Role domain.Role `json:"role"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateTaskRequest defines the payload for creating a task.
// AssignedTo is optional; when omitted the task is assigned to the
// caller. Non-admin callers always get the task assigned to themselves
// regardless of this field.
type CreateTaskRequest struct {
	Title       string    `json:"title"       validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"required,min=1"`
	DueDate     time.Time `json:"due_date"    validate:"required"`
	Priority    string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	AssignedTo  string    `json:"assigned_to" validate:"omitempty,uuid"`
}

// UpdateTaskRequest defines the payload for a partial task update.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,min=1"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    *string    `json:"priority,omitempty"    validate:"omitempty,oneof=low medium high"`
	Status      *string    `json:"status,omitempty"      validate:"omitempty,oneof=pending completed"`
	AssignedTo  *string    `json:"assigned_to,omitempty" validate:"omitempty,uuid"`
}

// UpdateStatusRequest defines the payload for the status endpoint.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed"`
}

// UpdatePriorityRequest defines the payload for the priority endpoint.
type UpdatePriorityRequest struct {
	Priority string `json:"priority" validate:"required,oneof=low medium high"`
}

// UserRefResponse is a resolved user reference carried on task
// responses. Name and email are empty when the referenced user has
// been deleted.
type UserRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"due_date"`
	Priority    string          `json:"priority"`
	Status      string          `json:"status"`
	AssignedTo  UserRefResponse `json:"assigned_to"`
	CreatedBy   UserRefResponse `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TaskListResponse is the pagination envelope for task listings.
type TaskListResponse struct {
	Tasks       []TaskResponse `json:"tasks"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
	TotalTasks  int            `json:"total_tasks"`
}

// UserResponse represents the response data for a user. The password
// hash is never serialized.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// taskToResponse transforms a task with resolved references into its
// response shape.
func taskToResponse(task *domain.TaskWithRefs) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		AssignedTo:  userRefToResponse(task.Assignee),
		CreatedBy:   userRefToResponse(task.Creator),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func userRefToResponse(ref domain.UserRef) UserRefResponse {
	return UserRefResponse{
		ID:    ref.ID.String(),
		Name:  ref.Name,
		Email: ref.Email,
	}
}

// userToResponse transforms a user into its response shape.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
