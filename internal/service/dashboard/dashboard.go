// Package dashboard assembles the role-specific landing view from several
// independent API calls.
package dashboard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/stockdesk/internal/analytics"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
)

const recentLimit = 5

// Section names.
const (
	SectionStock     = "stock"
	SectionLowStock  = "lowStock"
	SectionUsers     = "users"
	SectionBills     = "bills"
	SectionRecent    = "recentBills"
	SectionSuppliers = "suppliers"
	SectionPurchases = "purchases"
	SectionRentals   = "rentals"
)

type StockSource interface {
	Stats(ctx context.Context) (analytics.StockStats, error)
	LowStock(ctx context.Context) ([]models.Product, error)
}

type UserSource interface {
	Stats(ctx context.Context) (models.UserStats, error)
}

type BillSource interface {
	Stats(ctx context.Context) (models.BillStats, error)
	List(ctx context.Context, params models.ListParams) (models.ListResult[models.Bill], error)
}

type SupplierSource interface {
	Stats(ctx context.Context) (models.SupplierStats, error)
}

type PurchaseSource interface {
	List(ctx context.Context, params models.ListParams) (models.ListResult[models.Purchase], error)
}

type RentalSource interface {
	All(ctx context.Context, params models.ListParams) ([]models.Rental, error)
}

// Sources are the entity services a dashboard reads from.
type Sources struct {
	Products  StockSource
	Users     UserSource
	Bills     BillSource
	Suppliers SupplierSource
	Purchases PurchaseSource
	Rentals   RentalSource
}

// Section is one independently loaded block. A failed section carries only
// its error message.
type Section struct {
	Name  string `json:"name"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Dashboard is the loaded view for one role.
type Dashboard struct {
	Role     models.Role `json:"role"`
	Sections []Section   `json:"sections"`
	LoadedAt time.Time   `json:"loadedAt"`
}

// Section returns the named section, if the role has it.
func (d *Dashboard) Section(name string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// RentalSummary is the rentals section payload.
type RentalSummary struct {
	Counts  map[analytics.Urgency]int `json:"counts"`
	Notices []analytics.RentalNotice  `json:"notices"`
}

type loader struct {
	name string
	load func(ctx context.Context) (any, error)
}

// Service loads dashboards.
type Service struct {
	src    Sources
	logger *zap.Logger
	now    func() time.Time
}

// NewService builds a dashboard Service.
func NewService(src Sources, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{src: src, logger: logger, now: time.Now}
}

// Load fetches every section of role's dashboard concurrently. A failing
// section degrades to its error message; a rejected session fails the whole
// load with backend.ErrUnauthorized.
func (s *Service) Load(ctx context.Context, role models.Role) (*Dashboard, error) {
	if !role.Valid() {
		return nil, models.NewValidationError("role", "unknown role "+string(role))
	}

	loaders := s.loadersFor(role)
	sections := make([]Section, len(loaders))

	g, gctx := errgroup.WithContext(ctx)
	for i, l := range loaders {
		i, l := i, l
		g.Go(func() error {
			data, err := l.load(gctx)
			if err != nil {
				if errors.Is(err, backend.ErrUnauthorized) {
					return err
				}
				s.logger.Warn("dashboard section failed",
					zap.String("role", string(role)),
					zap.String("section", l.name),
					zap.Error(err))
				sections[i] = Section{Name: l.name, Error: err.Error()}
				return nil
			}
			sections[i] = Section{Name: l.name, Data: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{Role: role, Sections: sections, LoadedAt: s.now()}, nil
}

func (s *Service) loadersFor(role models.Role) []loader {
	switch role {
	case models.RoleSuperAdmin:
		return []loader{s.stock(), s.users(), s.bills(), s.suppliers(), s.rentals()}
	case models.RoleStockManager:
		return []loader{s.stock(), s.lowStock(), s.suppliers(), s.purchases()}
	case models.RoleBillCounter:
		return []loader{s.bills(), s.recentBills(), s.rentals()}
	default:
		return []loader{s.stock()}
	}
}

func (s *Service) stock() loader {
	return loader{SectionStock, func(ctx context.Context) (any, error) {
		return s.src.Products.Stats(ctx)
	}}
}

func (s *Service) lowStock() loader {
	return loader{SectionLowStock, func(ctx context.Context) (any, error) {
		return s.src.Products.LowStock(ctx)
	}}
}

func (s *Service) users() loader {
	return loader{SectionUsers, func(ctx context.Context) (any, error) {
		return s.src.Users.Stats(ctx)
	}}
}

func (s *Service) bills() loader {
	return loader{SectionBills, func(ctx context.Context) (any, error) {
		return s.src.Bills.Stats(ctx)
	}}
}

func (s *Service) recentBills() loader {
	return loader{SectionRecent, func(ctx context.Context) (any, error) {
		result, err := s.src.Bills.List(ctx, models.ListParams{Page: 1, Limit: recentLimit, SortBy: "createdAt", SortOrder: "desc"})
		if err != nil {
			return nil, err
		}
		return result.Items, nil
	}}
}

func (s *Service) suppliers() loader {
	return loader{SectionSuppliers, func(ctx context.Context) (any, error) {
		return s.src.Suppliers.Stats(ctx)
	}}
}

func (s *Service) purchases() loader {
	return loader{SectionPurchases, func(ctx context.Context) (any, error) {
		result, err := s.src.Purchases.List(ctx, models.ListParams{Page: 1, Limit: recentLimit, SortBy: "createdAt", SortOrder: "desc"})
		if err != nil {
			return nil, err
		}
		return result.Items, nil
	}}
}

func (s *Service) rentals() loader {
	return loader{SectionRentals, func(ctx context.Context) (any, error) {
		rentals, err := s.src.Rentals.All(ctx, models.ListParams{})
		if err != nil {
			return nil, err
		}
		notices := analytics.Notices(rentals, s.now())
		return RentalSummary{Counts: analytics.CountByUrgency(notices), Notices: notices}, nil
	}}
}
