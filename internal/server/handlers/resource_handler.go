package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

var errMissingID = errors.New("write response carried no id")

// ProductStore reads and writes products.
type ProductStore interface {
	List(ctx context.Context, params models.ListParams) (models.ListResult[models.Product], error)
	Get(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, id string, p models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) error
}

// CategoryStore reads and writes categories.
type CategoryStore interface {
	List(ctx context.Context, params models.ListParams) (models.ListResult[models.Category], error)
	Get(ctx context.Context, id string) (models.Category, error)
	Create(ctx context.Context, c models.Category) (models.Category, error)
	SetStatus(ctx context.Context, id string, status models.Status) (models.Category, error)
	Delete(ctx context.Context, id string) error
}

// SupplierStore reads suppliers and toggles their status.
type SupplierStore interface {
	List(ctx context.Context, params models.ListParams) (models.ListResult[models.Supplier], error)
	Get(ctx context.Context, id string) (models.Supplier, error)
	SetStatus(ctx context.Context, id string, status models.Status) (models.Supplier, error)
	Products(ctx context.Context, id string) ([]models.Product, error)
}

// UserStore reads users and toggles their access.
type UserStore interface {
	List(ctx context.Context, params models.ListParams) (models.ListResult[models.User], error)
	Get(ctx context.Context, id string) (models.User, error)
	SetStatus(ctx context.Context, id string, active bool) (models.User, error)
}

// SalesStore reads bills and their selling reports.
type SalesStore interface {
	List(ctx context.Context, params models.ListParams) (models.ListResult[models.Bill], error)
	SellingReport(ctx context.Context, params models.ListParams) ([]models.ProductSale, error)
	ProductSelling(ctx context.Context, productID string, params models.ListParams) ([]models.MonthlySale, error)
}

// RentalStore opens and closes rentals.
type RentalStore interface {
	Get(ctx context.Context, id string) (models.Rental, error)
	Create(ctx context.Context, r models.Rental) (models.Rental, error)
	Return(ctx context.Context, id string) (models.Rental, error)
	ByCustomer(ctx context.Context, customerID string) ([]models.Rental, error)
}

// PurchaseStore advances purchase orders.
type PurchaseStore interface {
	Get(ctx context.Context, id string) (models.Purchase, error)
	SetStatus(ctx context.Context, id string, status models.PurchaseStatus) (models.Purchase, error)
	Receive(ctx context.Context, id string, requested map[string]int64) (models.Purchase, error)
	AddPayment(ctx context.Context, id string, payment models.Payment) (models.Purchase, error)
}

// InwardStore reads and writes inwards of one kind.
type InwardStore interface {
	List(ctx context.Context, params models.ListParams) (models.ListResult[models.Inward], error)
	Get(ctx context.Context, id string) (models.Inward, error)
	Create(ctx context.Context, in models.Inward) (models.Inward, error)
	UpdateStatus(ctx context.Context, id string, status models.InwardStatus) (models.Inward, error)
	Delete(ctx context.Context, id string) error
}

// ProductItemStore reads and writes serialised product items.
type ProductItemStore interface {
	List(ctx context.Context, params models.ListParams) (models.ListResult[models.ProductItem], error)
	Get(ctx context.Context, id string) (models.ProductItem, error)
	Create(ctx context.Context, item models.ProductItem) (models.ProductItem, error)
	SetStatus(ctx context.Context, id string, status models.ProductItemStatus) (models.ProductItem, error)
	Delete(ctx context.Context, id string) error
}

// ResourceDeps are the entity services behind the resource endpoints.
type ResourceDeps struct {
	Products   ProductStore
	Categories CategoryStore
	Suppliers  SupplierStore
	Users      UserStore
	Sales      SalesStore
	Rentals    RentalStore
	Purchases  PurchaseStore
	Items      ProductItemStore
	Inwards    map[models.InwardKind]InwardStore
}

// ResourceHandler exposes entity reads and writes. Every write waits for the
// API to accept it and then answers with a fresh read, so callers always see
// the stored state rather than the write's echo.
type ResourceHandler struct {
	deps   ResourceDeps
	logger *zap.Logger
}

// NewResourceHandler constructs the HTTP handler adapter.
func NewResourceHandler(deps ResourceDeps, logger *zap.Logger) *ResourceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceHandler{deps: deps, logger: logger}
}

// mutateThenGet runs mutate and, once it succeeded, re-reads the entity whose
// id it returned.
func mutateThenGet[T any](h *ResourceHandler, c *gin.Context, status int,
	mutate func(ctx context.Context) (string, error),
	get func(ctx context.Context, id string) (T, error),
) {
	ctx := c.Request.Context()
	id, err := mutate(ctx)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if id == "" {
		writeError(c, h.logger, errMissingID)
		return
	}

	fresh, err := get(ctx, id)
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("reload %s: %w", id, err))
		return
	}
	c.JSON(status, fresh)
}

// mutateThenList runs mutate and, once it succeeded, answers with the list
// selected by the request's query.
func mutateThenList[T any](h *ResourceHandler, c *gin.Context,
	mutate func(ctx context.Context) error,
	list func(ctx context.Context, params models.ListParams) (models.ListResult[T], error),
) {
	ctx := c.Request.Context()
	if err := mutate(ctx); err != nil {
		writeError(c, h.logger, err)
		return
	}
	respondList(h, c, list)
}

func respondList[T any](h *ResourceHandler, c *gin.Context, list func(ctx context.Context, params models.ListParams) (models.ListResult[T], error)) {
	result, err := list(c.Request.Context(), listParams(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func respond[T any](h *ResourceHandler, c *gin.Context, v T, err error) {
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

type statusBody struct {
	Status string `json:"status" binding:"required"`
}

// Products

// ListProducts returns one page of products.
func (h *ResourceHandler) ListProducts(c *gin.Context) {
	respondList(h, c, h.deps.Products.List)
}

// GetProduct returns one product.
func (h *ResourceHandler) GetProduct(c *gin.Context) {
	p, err := h.deps.Products.Get(c.Request.Context(), c.Param("id"))
	respond(h, c, p, err)
}

// CreateProduct creates a product and answers with it as stored.
func (h *ResourceHandler) CreateProduct(c *gin.Context) {
	var p models.Product
	if !bind(c, &p) {
		return
	}
	mutateThenGet(h, c, http.StatusCreated, func(ctx context.Context) (string, error) {
		created, err := h.deps.Products.Create(ctx, p)
		return created.ID, err
	}, h.deps.Products.Get)
}

// UpdateProduct replaces a product and answers with it as stored.
func (h *ResourceHandler) UpdateProduct(c *gin.Context) {
	var p models.Product
	if !bind(c, &p) {
		return
	}
	id := c.Param("id")
	mutateThenGet(h, c, http.StatusOK, func(ctx context.Context) (string, error) {
		_, err := h.deps.Products.Update(ctx, id, p)
		return id, err
	}, h.deps.Products.Get)
}

// DeleteProduct removes a product and answers with the refreshed list.
func (h *ResourceHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	mutateThenList(h, c, func(ctx context.Context) error {
		return h.deps.Products.Delete(ctx, id)
	}, h.deps.Products.List)
}

// ProductSales returns the monthly sales of one product.
func (h *ResourceHandler) ProductSales(c *gin.Context) {
	sales, err := h.deps.Sales.ProductSelling(c.Request.Context(), c.Param("id"), listParams(c))
	respond(h, c, sales, err)
}

// Categories

// ListCategories returns one page of categories.
func (h *ResourceHandler) ListCategories(c *gin.Context) {
	respondList(h, c, h.deps.Categories.List)
}

// CreateCategory creates a category and answers with it as stored.
func (h *ResourceHandler) CreateCategory(c *gin.Context) {
	var cat models.Category
	if !bind(c, &cat) {
		return
	}
	mutateThenGet(h, c, http.StatusCreated, func(ctx context.Context) (string, error) {
		created, err := h.deps.Categories.Create(ctx, cat)
		return created.ID, err
	}, h.deps.Categories.Get)
}

// SetCategoryStatus activates or deactivates a category.
func (h *ResourceHandler) SetCategoryStatus(c *gin.Context) {
	var body statusBody
	if !bind(c, &body) {
		return
	}
	id := c.Param("id")
	mutateThenGet(h, c, http.StatusOK, func(ctx context.Context) (string, error) {
		_, err := h.deps.Categories.SetStatus(ctx, id, models.Status(body.Status))
		return id, err
	}, h.deps.Categories.Get)
}

// DeleteCategory removes a category and answers with the refreshed list.
func (h *ResourceHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	mutateThenList(h, c, func(ctx context.Context) error {
		return h.deps.Categories.Delete(ctx, id)
	}, h.deps.Categories.List)
}

// Suppliers

// ListSuppliers returns one page of suppliers.
func (h *ResourceHandler) ListSuppliers(c *gin.Context) {
	respondList(h, c, h.deps.Suppliers.List)
}

// SetSupplierStatus activates or deactivates a supplier.
func (h *ResourceHandler) SetSupplierStatus(c *gin.Context) {
	var body statusBody
	if !bind(c, &body) {
		return
	}
	id := c.Param("id")
	mutateThenGet(h, c, http.StatusOK, func(ctx context.Context) (string, error) {
		_, err := h.deps.Suppliers.SetStatus(ctx, id, models.Status(body.Status))
		return id, err
	}, h.deps.Suppliers.Get)
}

// SupplierProducts lists the products a supplier delivers.
func (h *ResourceHandler) SupplierProducts(c *gin.Context) {
	products, err := h.deps.Suppliers.Products(c.Request.Context(), c.Param("id"))
	respond(h, c, products, err)
}

// Users

// ListUsers returns one page of users.
func (h *ResourceHandler) ListUsers(c *gin.Context) {
	respondList(h, c, h.deps.Users.List)
}

// SetUserActive enables or disables a user account.
func (h *ResourceHandler) SetUserActive(c *gin.Context) {
	var body struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if !bind(c, &body) {
		return
	}
	id := c.Param("id")
	mutateThenGet(h, c, http.StatusOK, func(ctx context.Context) (string, error) {
		_, err := h.deps.Users.SetStatus(ctx, id, *body.IsActive)
		return id, err
	}, h.deps.Users.Get)
}

// Bills

// ListBills returns one page of bills.
func (h *ResourceHandler) ListBills(c *gin.Context) {
	respondList(h, c, h.deps.Sales.List)
}

// SellingReport returns sales per product over the queried date range.
func (h *ResourceHandler) SellingReport(c *gin.Context) {
	sales, err := h.deps.Sales.SellingReport(c.Request.Context(), listParams(c))
	respond(h, c, sales, err)
}

// Rentals

// CreateRental opens a rental and answers with it as stored.
func (h *ResourceHandler) CreateRental(c *gin.Context) {
	var r models.Rental
	if !bind(c, &r) {
		return
	}
	mutateThenGet(h, c, http.StatusCreated, func(ctx context.Context) (string, error) {
		created, err := h.deps.Rentals.Create(ctx, r)
		return created.ID, err
	}, h.deps.Rentals.Get)
}

// ReturnRental marks a rental returned.
func (h *ResourceHandler) ReturnRental(c *gin.Context) {
	id := c.Param("id")
	mutateThenGet(h, c, http.StatusOK, func(ctx context.Context) (string, error) {
		_, err := h.deps.Rentals.Return(ctx, id)
		return id, err
	}, h.deps.Rentals.Get)
}

// CustomerRentals lists a customer's rentals.
func (h *ResourceHandler) CustomerRentals(c *gin.Context) {
	rentals, err := h.deps.Rentals.ByCustomer(c.Request.Context(), c.Param("id"))
	respond(h, c, rentals, err)
}

// Purchases

type receiveBody struct {
	Items []models.ReceiveLine `json:"items" binding:"required"`
}

// ReceivePurchase records goods received against a purchase order.
func (h *ResourceHandler) ReceivePurchase(c *gin.Context) {
	var body receiveBody
	if !bind(c, &body) {
		return
	}

	requested := make(map[string]int64, len(body.Items))
	for _, line := range body.Items {
		requested[line.ProductID] += line.ReceivedQuantity
	}

	id := c.Param("id")
	mutateThenGet(h, c, http.StatusOK, func(ctx context.Context) (string, error) {
		_, err := h.deps.Purchases.Receive(ctx, id, requested)
		return id, err
	}, h.deps.Purchases.Get)
}

// AddPurchasePayment records a payment against a purchase order.
func (h *ResourceHandler) AddPurchasePayment(c *gin.Context) {
	var payment models.Payment
	if !bind(c, &payment) {
		return
	}
	id := c.Param("id")
	mutateThenGet(h, c, http.StatusOK, func(ctx context.Context) (string, error) {
		_, err := h.deps.Purchases.AddPayment(ctx, id, payment)
		return id, err
	}, h.deps.Purchases.Get)
}

// SetPurchaseStatus moves a purchase order to another status.
func (h *ResourceHandler) SetPurchaseStatus(c *gin.Context) {
	var body statusBody
	if !bind(c, &body) {
		return
	}
	id := c.Param("id")
	mutateThenGet(h, c, http.StatusOK, func(ctx context.Context) (string, error) {
		_, err := h.deps.Purchases.SetStatus(ctx, id, models.PurchaseStatus(body.Status))
		return id, err
	}, h.deps.Purchases.Get)
}

// Inwards

func (h *ResourceHandler) inwards(c *gin.Context) (InwardStore, bool) {
	kind := models.InwardKind(c.Param("kind"))
	store, ok := h.deps.Inwards[kind]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown inward kind %q", kind)})
	}
	return store, ok
}

// ListInwards returns one page of inwards of :kind.
func (h *ResourceHandler) ListInwards(c *gin.Context) {
	if store, ok := h.inwards(c); ok {
		respondList(h, c, store.List)
	}
}

// GetInward returns one inward of :kind.
func (h *ResourceHandler) GetInward(c *gin.Context) {
	if store, ok := h.inwards(c); ok {
		in, err := store.Get(c.Request.Context(), c.Param("id"))
		respond(h, c, in, err)
	}
}

// CreateInward records a goods receipt of the :kind inventory.
func (h *ResourceHandler) CreateInward(c *gin.Context) {
	store, ok := h.inwards(c)
	if !ok {
		return
	}
	var in models.Inward
	if !bind(c, &in) {
		return
	}
	mutateThenGet(h, c, http.StatusCreated, func(ctx context.Context) (string, error) {
		created, err := store.Create(ctx, in)
		return created.ID, err
	}, store.Get)
}

// SetInwardStatus moves an inward to another status.
func (h *ResourceHandler) SetInwardStatus(c *gin.Context) {
	store, ok := h.inwards(c)
	if !ok {
		return
	}
	var body statusBody
	if !bind(c, &body) {
		return
	}
	id := c.Param("id")
	mutateThenGet(h, c, http.StatusOK, func(ctx context.Context) (string, error) {
		_, err := store.UpdateStatus(ctx, id, models.InwardStatus(body.Status))
		return id, err
	}, store.Get)
}

// DeleteInward removes an inward and answers with the refreshed list.
// Accessory inwards answer 501.
func (h *ResourceHandler) DeleteInward(c *gin.Context) {
	store, ok := h.inwards(c)
	if !ok {
		return
	}
	id := c.Param("id")
	mutateThenList(h, c, func(ctx context.Context) error {
		return store.Delete(ctx, id)
	}, store.List)
}

// Product items

// ListProductItems returns one page of product items.
func (h *ResourceHandler) ListProductItems(c *gin.Context) {
	respondList(h, c, h.deps.Items.List)
}

// CreateProductItem registers a product item and answers with it as stored.
func (h *ResourceHandler) CreateProductItem(c *gin.Context) {
	var item models.ProductItem
	if !bind(c, &item) {
		return
	}
	mutateThenGet(h, c, http.StatusCreated, func(ctx context.Context) (string, error) {
		created, err := h.deps.Items.Create(ctx, item)
		return created.ID, err
	}, h.deps.Items.Get)
}

// SetProductItemStatus moves a product item to another status.
func (h *ResourceHandler) SetProductItemStatus(c *gin.Context) {
	var body statusBody
	if !bind(c, &body) {
		return
	}
	id := c.Param("id")
	mutateThenGet(h, c, http.StatusOK, func(ctx context.Context) (string, error) {
		_, err := h.deps.Items.SetStatus(ctx, id, models.ProductItemStatus(body.Status))
		return id, err
	}, h.deps.Items.Get)
}

// DeleteProductItem removes a product item and answers with the refreshed list.
func (h *ResourceHandler) DeleteProductItem(c *gin.Context) {
	id := c.Param("id")
	mutateThenList(h, c, func(ctx context.Context) error {
		return h.deps.Items.Delete(ctx, id)
	}, h.deps.Items.List)
}

const paramDateLayout = "2006-01-02"

// listParams reads the list query parameters the API understands. Malformed
// numbers and dates are left at zero and so not sent.
func listParams(c *gin.Context) models.ListParams {
	p := models.ListParams{
		Status:     c.Query("status"),
		Search:     c.Query("search"),
		ProductID:  c.Query("productId"),
		CategoryID: c.Query("categoryId"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}
	p.Page, _ = strconv.Atoi(c.Query("page"))
	p.Limit, _ = strconv.Atoi(c.Query("limit"))
	p.StartDate, _ = time.Parse(paramDateLayout, c.Query("startDate"))
	p.EndDate, _ = time.Parse(paramDateLayout, c.Query("endDate"))
	return p
}
