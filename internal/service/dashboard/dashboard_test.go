package dashboard

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockdesk/internal/analytics"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
)

type fakeProducts struct{ err error }

func (f fakeProducts) Stats(context.Context) (analytics.StockStats, error) {
	if f.err != nil {
		return analytics.StockStats{}, f.err
	}
	return analytics.StockStats{Total: 12, InStock: 10, LowStock: 2}, nil
}

func (f fakeProducts) LowStock(context.Context) ([]models.Product, error) {
	return []models.Product{{ID: "p1", Quantity: 3}}, f.err
}

type fakeUsers struct{ err error }

func (f fakeUsers) Stats(context.Context) (models.UserStats, error) {
	return models.UserStats{Total: 4}, f.err
}

type fakeBills struct{ err error }

func (f fakeBills) Stats(context.Context) (models.BillStats, error) {
	return models.BillStats{TotalBills: 7, TotalRevenue: decimal.NewFromInt(900)}, f.err
}

func (f fakeBills) List(_ context.Context, params models.ListParams) (models.ListResult[models.Bill], error) {
	if params.Limit != recentLimit {
		return models.ListResult[models.Bill]{}, errors.New("unexpected limit")
	}
	return models.ListResult[models.Bill]{Items: []models.Bill{{ID: "b1"}}}, f.err
}

type fakeSuppliers struct{ err error }

func (f fakeSuppliers) Stats(context.Context) (models.SupplierStats, error) {
	return models.SupplierStats{Total: 3}, f.err
}

type fakePurchases struct{}

func (fakePurchases) List(context.Context, models.ListParams) (models.ListResult[models.Purchase], error) {
	return models.ListResult[models.Purchase]{Items: []models.Purchase{{ID: "po1"}}}, nil
}

type fakeRentals struct{ rentals []models.Rental }

func (f fakeRentals) All(context.Context, models.ListParams) ([]models.Rental, error) {
	return f.rentals, nil
}

func newTestService(src Sources, now time.Time) *Service {
	svc := NewService(src, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func sectionNames(d *Dashboard) []string {
	names := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		names[i] = s.Name
	}
	return names
}

func TestLoadSectionsPerRole(t *testing.T) {
	src := Sources{
		Products:  fakeProducts{},
		Users:     fakeUsers{},
		Bills:     fakeBills{},
		Suppliers: fakeSuppliers{},
		Purchases: fakePurchases{},
		Rentals:   fakeRentals{},
	}
	svc := newTestService(src, time.Now())

	tests := map[models.Role][]string{
		models.RoleSuperAdmin:   {SectionStock, SectionUsers, SectionBills, SectionSuppliers, SectionRentals},
		models.RoleStockManager: {SectionStock, SectionLowStock, SectionSuppliers, SectionPurchases},
		models.RoleBillCounter:  {SectionBills, SectionRecent, SectionRentals},
		models.RoleStaff:        {SectionStock},
	}

	for role, want := range tests {
		t.Run(string(role), func(t *testing.T) {
			d, err := svc.Load(context.Background(), role)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			got := sectionNames(d)
			if len(got) != len(want) {
				t.Fatalf("sections = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("sections = %v, want %v", got, want)
					break
				}
				if d.Sections[i].Error != "" {
					t.Errorf("section %s failed: %s", got[i], d.Sections[i].Error)
				}
			}
		})
	}
}

func TestLoadDegradesFailedSection(t *testing.T) {
	src := Sources{
		Products:  fakeProducts{},
		Users:     fakeUsers{err: &backend.APIError{Status: http.StatusInternalServerError, Message: "Failed to fetch user stats"}},
		Bills:     fakeBills{},
		Suppliers: fakeSuppliers{},
		Rentals:   fakeRentals{},
	}

	d, err := newTestService(src, time.Now()).Load(context.Background(), models.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	users, _ := d.Section(SectionUsers)
	if users.Error != "Failed to fetch user stats" || users.Data != nil {
		t.Errorf("expected degraded users section, got %+v", users)
	}
	stock, _ := d.Section(SectionStock)
	if stats, ok := stock.Data.(analytics.StockStats); !ok || stats.Total != 12 {
		t.Errorf("expected stock data to survive, got %+v", stock)
	}
}

func TestLoadFailsOnUnauthorized(t *testing.T) {
	src := Sources{
		Products:  fakeProducts{},
		Suppliers: fakeSuppliers{err: &backend.APIError{Status: http.StatusUnauthorized, Message: "jwt expired"}},
		Purchases: fakePurchases{},
	}

	_, err := newTestService(src, time.Now()).Load(context.Background(), models.RoleStockManager)
	if !errors.Is(err, backend.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLoadRejectsUnknownRole(t *testing.T) {
	_, err := newTestService(Sources{}, time.Now()).Load(context.Background(), "guest")
	if !models.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRentalSectionClassifies(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	src := Sources{
		Bills: fakeBills{},
		Rentals: fakeRentals{rentals: []models.Rental{
			{ID: "late", ExpectedReturnTime: now.AddDate(0, 0, -2)},
			{ID: "later", ExpectedReturnTime: now.AddDate(0, 0, 8)},
		}},
	}

	d, err := newTestService(src, now).Load(context.Background(), models.RoleBillCounter)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	section, _ := d.Section(SectionRentals)
	summary, ok := section.Data.(RentalSummary)
	if !ok {
		t.Fatalf("unexpected rentals payload %T", section.Data)
	}
	if summary.Counts[analytics.Overdue] != 1 || summary.Notices[0].Rental.ID != "late" {
		t.Errorf("unexpected summary %+v", summary)
	}
}
