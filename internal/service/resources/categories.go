package resources

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// CategoryService wraps /categories.
type CategoryService struct {
	t Transport
}

// NewCategoryService builds a CategoryService.
func NewCategoryService(t Transport) *CategoryService {
	return &CategoryService{t: t}
}

// List returns one page of categories.
func (s *CategoryService) List(ctx context.Context, params models.ListParams) (models.ListResult[models.Category], error) {
	return fetchList[models.Category](ctx, s.t, "/categories", params.Values(), "Failed to fetch categories", "categories")
}

// Get returns one category.
func (s *CategoryService) Get(ctx context.Context, id string) (models.Category, error) {
	return fetchOne[models.Category](ctx, s.t, http.MethodGet, path("categories", id), nil, "Failed to fetch category", "category")
}

// Create validates and submits a new category.
func (s *CategoryService) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if err := ValidateCategory(c); err != nil {
		return models.Category{}, err
	}
	return fetchOne[models.Category](ctx, s.t, http.MethodPost, "/categories", c, "Failed to create category", "category")
}

// Update validates and replaces a category.
func (s *CategoryService) Update(ctx context.Context, id string, c models.Category) (models.Category, error) {
	if err := ValidateCategory(c); err != nil {
		return models.Category{}, err
	}
	return fetchOne[models.Category](ctx, s.t, http.MethodPut, path("categories", id), c, "Failed to update category", "category")
}

// SetStatus soft-deletes or restores a category.
func (s *CategoryService) SetStatus(ctx context.Context, id string, status models.Status) (models.Category, error) {
	return fetchOne[models.Category](ctx, s.t, http.MethodPatch, path("categories", id, "status"),
		statusUpdate{Status: string(status)}, "Failed to update category status", "category")
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return call(ctx, s.t, http.MethodDelete, path("categories", id), nil, "Failed to delete category")
}

// ValidateCategory requires a name of at least two characters.
func ValidateCategory(c models.Category) error {
	if utf8.RuneCountInString(strings.TrimSpace(c.Name)) < 2 {
		return models.NewValidationError("name", "category name must be at least 2 characters")
	}
	return nil
}
