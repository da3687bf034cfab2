package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

func catalog() []models.Product {
	return []models.Product{
		{Name: "Drill", Category: models.NewRef("Tools"), Supplier: models.NewRef("Acme"), Price: decimal.NewFromInt(2500), Quantity: 20},
		{Name: "saw", Category: models.NewRef("Tools"), Supplier: models.NewRef("Bolt Co"), Price: decimal.NewFromInt(750), Quantity: 0},
		{Name: "Engine Oil", Category: models.NewRef("Lubricants"), Supplier: models.NewRef("Acme"), Price: decimal.NewFromInt(90), Quantity: 5000, Unit: models.UnitLiter},
		{Name: "anchor", Category: models.NewRef("Tools"), Supplier: models.NewRef("Acme"), Price: decimal.NewFromInt(120), Quantity: 8},
		{Name: "Tent", Price: decimal.NewFromInt(9000), Quantity: 3},
	}
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func sameNames(t *testing.T, got []models.Product, want ...string) {
	t.Helper()
	g := names(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestFilterIsIntersection(t *testing.T) {
	products := catalog()

	byCategory := ProductQuery{Category: "Tools"}.Filter(products)
	byPrice := ProductQuery{MinPrice: "100", MaxPrice: "1000"}.Filter(products)
	both := ProductQuery{Category: "Tools", MinPrice: "100", MaxPrice: "1000"}.Filter(products)

	inPrice := map[string]bool{}
	for _, p := range byPrice {
		inPrice[p.Name] = true
	}
	var intersection []models.Product
	for _, p := range byCategory {
		if inPrice[p.Name] {
			intersection = append(intersection, p)
		}
	}

	sameNames(t, both, names(intersection)...)
	sameNames(t, both, "saw", "anchor")
}

func TestFilterUnsetBoundsDoNotConstrain(t *testing.T) {
	products := catalog()

	sameNames(t, ProductQuery{MinPrice: "", MaxPrice: ""}.Filter(products), names(products)...)
	sameNames(t, ProductQuery{MinPrice: "1000"}.Filter(products), "Drill", "Tent")
	sameNames(t, ProductQuery{MaxPrice: "100"}.Filter(products), "Engine Oil")
	sameNames(t, ProductQuery{MinPrice: "abc"}.Filter(products), names(products)...)
}

func TestFilterSearchAndStatus(t *testing.T) {
	products := catalog()

	sameNames(t, ProductQuery{Search: "acme"}.Filter(products), "Drill", "Engine Oil", "anchor")
	sameNames(t, ProductQuery{Search: "LUBRI"}.Filter(products), "Engine Oil")
	sameNames(t, ProductQuery{Statuses: []StockStatus{LowStock, OutOfStock}}.Filter(products), "saw", "Engine Oil", "anchor", "Tent")
	sameNames(t, ProductQuery{Supplier: "bolt co"}.Filter(products), "saw")
	sameNames(t, ProductQuery{MinQuantity: "4", MaxQuantity: "10"}.Filter(products), "Engine Oil", "anchor")
}

func TestSortCaseInsensitiveAndStable(t *testing.T) {
	products := catalog()

	sameNames(t, ProductQuery{SortBy: "name"}.Sort(products), "anchor", "Drill", "Engine Oil", "saw", "Tent")
	sameNames(t, ProductQuery{SortBy: "name", Desc: true}.Sort(products), "Tent", "saw", "Engine Oil", "Drill", "anchor")
	sameNames(t, ProductQuery{SortBy: "price"}.Sort(products), "Engine Oil", "anchor", "saw", "Drill", "Tent")

	// Equal categories keep their input order.
	sameNames(t, ProductQuery{SortBy: "category"}.Sort(products), "Engine Oil", "Tent", "Drill", "saw", "anchor")
}

func TestPaginateClamp(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i + 1
	}

	tests := []struct {
		page     int
		wantPage int
		from, to int
	}{
		{0, 1, 1, 10},
		{-4, 1, 1, 10},
		{2, 2, 11, 20},
		{3, 3, 21, 23},
		{99, 3, 21, 23},
	}

	for _, tt := range tests {
		p := Paginate(items, tt.page, 10)
		if p.Page != tt.wantPage || p.TotalPages != 3 || p.Total != 23 {
			t.Errorf("Paginate(page=%d) = page %d of %d (total %d)", tt.page, p.Page, p.TotalPages, p.Total)
		}
		if p.From != tt.from || p.To != tt.to {
			t.Errorf("Paginate(page=%d) range = %d-%d, want %d-%d", tt.page, p.From, p.To, tt.from, tt.to)
		}
		if len(p.Items) != tt.to-tt.from+1 || p.Items[0] != tt.from {
			t.Errorf("Paginate(page=%d) items = %v", tt.page, p.Items)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]string(nil), 5, 0)
	if p.Page != 1 || p.TotalPages != 1 || p.Total != 0 || p.From != 0 || p.To != 0 {
		t.Errorf("unexpected empty page %+v", p)
	}
	if p.PageSize != DefaultPageSize {
		t.Errorf("expected default page size, got %d", p.PageSize)
	}
	if p.Items == nil || len(p.Items) != 0 {
		t.Errorf("expected empty non-nil items, got %v", p.Items)
	}
}

func TestApply(t *testing.T) {
	page := ProductQuery{Category: "Tools", SortBy: "price", Desc: true, Page: 2, PageSize: 2}.Apply(catalog())
	if page.Total != 3 || page.TotalPages != 2 {
		t.Fatalf("unexpected page meta %+v", page)
	}
	sameNames(t, page.Items, "anchor")
}
