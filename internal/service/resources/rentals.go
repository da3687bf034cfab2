package resources

import (
	"context"
	"net/http"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// RentalService wraps /rentals.
type RentalService struct {
	t Transport
}

// NewRentalService builds a RentalService.
func NewRentalService(t Transport) *RentalService {
	return &RentalService{t: t}
}

// List returns one page of rentals.
func (s *RentalService) List(ctx context.Context, params models.ListParams) (models.ListResult[models.Rental], error) {
	return fetchList[models.Rental](ctx, s.t, "/rentals", params.Values(), "Failed to fetch rentals", "rentals")
}

// All returns every rental matching params across all pages.
func (s *RentalService) All(ctx context.Context, params models.ListParams) ([]models.Rental, error) {
	return fetchAll[models.Rental](ctx, s.t, "/rentals", params, "Failed to fetch rentals", "rentals")
}

// Get returns one rental.
func (s *RentalService) Get(ctx context.Context, id string) (models.Rental, error) {
	return fetchOne[models.Rental](ctx, s.t, http.MethodGet, path("rentals", id), nil, "Failed to fetch rental", "rental")
}

// Create validates and submits a new rental.
func (s *RentalService) Create(ctx context.Context, r models.Rental) (models.Rental, error) {
	if r.Customer.Key() == "" {
		return models.Rental{}, models.NewValidationError("customer", "select a customer")
	}
	if len(r.Items) == 0 {
		return models.Rental{}, models.NewValidationError("items", "add at least one item")
	}
	if r.ExpectedReturnTime.IsZero() {
		return models.Rental{}, models.NewValidationError("expectedReturnTime", "expected return time is required")
	}
	return fetchOne[models.Rental](ctx, s.t, http.MethodPost, "/rentals", r.ForWrite(), "Failed to create rental", "rental")
}

// Return marks a rental as returned.
func (s *RentalService) Return(ctx context.Context, id string) (models.Rental, error) {
	return fetchOne[models.Rental](ctx, s.t, http.MethodPatch, path("rentals", id, "status"),
		statusUpdate{Status: string(models.RentalReturned)}, "Failed to return rental", "rental")
}

// ByCustomer lists a customer's rentals.
func (s *RentalService) ByCustomer(ctx context.Context, customerID string) ([]models.Rental, error) {
	result, err := fetchList[models.Rental](ctx, s.t, path("rentals", "customer", customerID), nil, "Failed to fetch customer rentals", "rentals")
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}
