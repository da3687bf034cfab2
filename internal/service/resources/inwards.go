package resources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mamadbah2/stockdesk/internal/analytics"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// InwardService wraps the goods-receipt endpoints of one inventory kind.
// Rental and accessory inwards share a shape but live under different paths.
type InwardService struct {
	t    Transport
	kind models.InwardKind
	base string
}

// NewInwardService builds an InwardService for kind.
func NewInwardService(t Transport, kind models.InwardKind) (*InwardService, error) {
	var base string
	switch kind {
	case models.InwardRental:
		base = "rental-inwards"
	case models.InwardAccessory:
		base = "accessory-inward"
	default:
		return nil, models.NewValidationError("kind", fmt.Sprintf("unknown inward kind %q", kind))
	}
	return &InwardService{t: t, kind: kind, base: base}, nil
}

// Kind reports which inventory this service feeds.
func (s *InwardService) Kind() models.InwardKind {
	return s.kind
}

// List returns one page of inwards.
func (s *InwardService) List(ctx context.Context, params models.ListParams) (models.ListResult[models.Inward], error) {
	result, err := fetchList[models.Inward](ctx, s.t, path(s.base), params.Values(), "Failed to fetch inwards", "inwards", "rentalInwards", "accessoryInwards")
	for i := range result.Items {
		result.Items[i].Kind = s.kind
	}
	return result, err
}

// Get returns one inward.
func (s *InwardService) Get(ctx context.Context, id string) (models.Inward, error) {
	in, err := fetchOne[models.Inward](ctx, s.t, http.MethodGet, path(s.base, id), nil, "Failed to fetch inward", "inward")
	if err == nil {
		in.Kind = s.kind
	}
	return in, err
}

// Create validates the inward, fills in line totals and TotalAmount, and
// submits it.
func (s *InwardService) Create(ctx context.Context, in models.Inward) (models.Inward, error) {
	if err := analytics.ValidateInward(in); err != nil {
		return models.Inward{}, err
	}
	analytics.PriceInward(&in)

	created, err := fetchOne[models.Inward](ctx, s.t, http.MethodPost, path(s.base), in.ForWrite(), "Failed to create inward", "inward")
	if err == nil {
		created.Kind = s.kind
	}
	return created, err
}

// UpdateStatus moves an inward to status.
func (s *InwardService) UpdateStatus(ctx context.Context, id string, status models.InwardStatus) (models.Inward, error) {
	in, err := fetchOne[models.Inward](ctx, s.t, http.MethodPatch, path(s.base, id, "status"),
		statusUpdate{Status: string(status)}, "Failed to update inward status", "inward")
	if err == nil {
		in.Kind = s.kind
	}
	return in, err
}

// Delete removes a rental inward. Accessory inwards cannot be deleted.
func (s *InwardService) Delete(ctx context.Context, id string) error {
	if s.kind == models.InwardAccessory {
		return fmt.Errorf("delete accessory inward: %w", ErrUnsupported)
	}
	return call(ctx, s.t, http.MethodDelete, path(s.base, id), nil, "Failed to delete inward")
}
