package resources

import (
	"context"
	"net/http"
	"strings"

	"github.com/mamadbah2/stockdesk/internal/analytics"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
)

// UserService wraps /users.
type UserService struct {
	t Transport
}

// NewUserService builds a UserService.
func NewUserService(t Transport) *UserService {
	return &UserService{t: t}
}

// List returns one page of users.
func (s *UserService) List(ctx context.Context, params models.ListParams) (models.ListResult[models.User], error) {
	return fetchList[models.User](ctx, s.t, "/users", params.Values(), "Failed to fetch users", "users")
}

// All returns every user matching params across all pages.
func (s *UserService) All(ctx context.Context, params models.ListParams) ([]models.User, error) {
	return fetchAll[models.User](ctx, s.t, "/users", params, "Failed to fetch users", "users")
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	return fetchOne[models.User](ctx, s.t, http.MethodGet, path("users", id), nil, "Failed to fetch user", "user")
}

// Create validates and submits a new user.
func (s *UserService) Create(ctx context.Context, u models.User) (models.User, error) {
	if err := ValidateUser(u); err != nil {
		return models.User{}, err
	}
	if u.Password == "" {
		return models.User{}, models.NewValidationError("password", "password is required")
	}
	return fetchOne[models.User](ctx, s.t, http.MethodPost, "/users", u, "Failed to create user", "user")
}

// Update validates and replaces a user.
func (s *UserService) Update(ctx context.Context, id string, u models.User) (models.User, error) {
	if err := ValidateUser(u); err != nil {
		return models.User{}, err
	}
	return fetchOne[models.User](ctx, s.t, http.MethodPut, path("users", id), u, "Failed to update user", "user")
}

type activeUpdate struct {
	IsActive bool `json:"isActive"`
}

// SetStatus activates or deactivates an account.
func (s *UserService) SetStatus(ctx context.Context, id string, active bool) (models.User, error) {
	return fetchOne[models.User](ctx, s.t, http.MethodPatch, path("users", id, "status"),
		activeUpdate{IsActive: active}, "Failed to update user status", "user")
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return call(ctx, s.t, http.MethodDelete, path("users", id), nil, "Failed to delete user")
}

// Stats falls back to counting the user list when /users/stats is missing.
func (s *UserService) Stats(ctx context.Context) (models.UserStats, error) {
	stats, err := fetchOne[models.UserStats](ctx, s.t, http.MethodGet, "/users/stats", nil, "Failed to fetch user stats", "stats")
	if err == nil {
		if stats.ByRole == nil {
			stats.ByRole = map[models.Role]int{}
		}
		return stats, nil
	}
	if !backend.IsNotFound(err) {
		return models.UserStats{}, err
	}

	users, err := s.All(ctx, models.ListParams{})
	if err != nil {
		return models.UserStats{}, err
	}
	return analytics.UserSummary(users), nil
}

// ValidateUser checks an account form before submission.
func ValidateUser(u models.User) error {
	if strings.TrimSpace(u.Username) == "" {
		return models.NewValidationError("username", "username is required")
	}
	if !u.Role.Valid() {
		return models.NewValidationError("role", "select a valid role")
	}
	return nil
}
