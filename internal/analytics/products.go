package analytics

import (
	"strings"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// ProductQuery is the filter, sort and page state of a product report view.
// String bounds keep the form semantics: an empty bound is unset.
type ProductQuery struct {
	Search      string
	Category    string
	Supplier    string
	MinPrice    string
	MaxPrice    string
	MinQuantity string
	MaxQuantity string
	Statuses    []StockStatus
	SortBy      string
	Desc        bool
	Page        int
	PageSize    int
}

// ProductSortFields are the fields a product list can be sorted by.
var ProductSortFields = map[string]SortField[models.Product]{
	"name":     {Name: "name", Text: func(p models.Product) string { return p.Name }},
	"category": {Name: "category", Text: CategoryName},
	"supplier": {Name: "supplier", Text: supplierName},
	"sku":      {Name: "sku", Text: func(p models.Product) string { return p.SKU }},
	"status":   {Name: "status", Text: func(p models.Product) string { return string(ClassifyStock(p)) }},
	"price":    {Name: "price", Number: func(p models.Product) float64 { return p.Price.InexactFloat64() }},
	"quantity": {Name: "quantity", Number: DisplayQuantity},
	"value":    {Name: "value", Number: func(p models.Product) float64 { return StockValue(p).InexactFloat64() }},
}

func supplierName(p models.Product) string {
	return p.Supplier.Label()
}

// Filter applies every set filter of q to products.
func (q ProductQuery) Filter(products []models.Product) []models.Product {
	return Filter(products,
		MatchText(q.Search,
			func(p models.Product) string { return p.Name },
			CategoryName,
			supplierName,
			func(p models.Product) string { return p.SKU },
		),
		Equals(q.Category, CategoryName),
		q.supplierFilter(),
		InRange(q.MinPrice, q.MaxPrice, func(p models.Product) float64 { return p.Price.InexactFloat64() }),
		InRange(q.MinQuantity, q.MaxQuantity, DisplayQuantity),
		InSet(q.Statuses, ClassifyStock),
	)
}

// A supplier filter matches either the supplier id or its display name.
func (q ProductQuery) supplierFilter() Predicate[models.Product] {
	if q.Supplier == "" {
		return nil
	}
	return func(p models.Product) bool {
		return p.Supplier.Key() == q.Supplier || strings.EqualFold(p.Supplier.Label(), q.Supplier)
	}
}

// Sort orders products by q.SortBy, defaulting to name.
func (q ProductQuery) Sort(products []models.Product) []models.Product {
	field, ok := ProductSortFields[q.SortBy]
	if !ok {
		field = ProductSortFields["name"]
	}
	return Sort(products, field, q.Desc)
}

// Apply filters, sorts and paginates products.
func (q ProductQuery) Apply(products []models.Product) Page[models.Product] {
	return Paginate(q.Sort(q.Filter(products)), q.Page, q.PageSize)
}
