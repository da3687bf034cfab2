package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/analytics"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/dashboard"
	"github.com/mamadbah2/stockdesk/internal/service/reporting"
)

type DashboardLoader interface {
	Load(ctx context.Context, role models.Role) (*dashboard.Dashboard, error)
}

type Reports interface {
	StockReport(ctx context.Context, q analytics.ProductQuery) (*reporting.StockReport, error)
	ExportStockCSV(ctx context.Context, q analytics.ProductQuery, w io.Writer) error
	MonthlySales(ctx context.Context, year int, productID string) (*reporting.SalesReport, error)
	RentalNotices(ctx context.Context, now time.Time) ([]analytics.RentalNotice, error)
}

// CurrentUser reports the signed-in user. *session.Manager implements it.
type CurrentUser interface {
	User() (models.User, bool)
}

// APIDeps are the services behind the JSON API.
type APIDeps struct {
	Dashboard DashboardLoader
	Reports   Reports
	Session   CurrentUser
}

// APIHandler serves the dashboard and report endpoints.
type APIHandler struct {
	deps   APIDeps
	logger *zap.Logger
	now    func() time.Time
}

// NewAPIHandler constructs the HTTP handler adapter.
func NewAPIHandler(deps APIDeps, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{deps: deps, logger: logger, now: time.Now}
}

// Dashboard loads the dashboard of ?role=, defaulting to the signed-in user's role.
func (h *APIHandler) Dashboard(c *gin.Context) {
	role := models.Role(strings.ToLower(c.Query("role")))
	if role == "" && h.deps.Session != nil {
		if user, ok := h.deps.Session.User(); ok {
			role = user.Role
		}
	}
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}

	d, err := h.deps.Dashboard.Load(c.Request.Context(), role)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// StockReport returns one page of the filtered stock list.
func (h *APIHandler) StockReport(c *gin.Context) {
	report, err := h.deps.Reports.StockReport(c.Request.Context(), productQuery(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// StockCSV downloads every product matching the filters as CSV.
func (h *APIHandler) StockCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.deps.Reports.ExportStockCSV(c.Request.Context(), productQuery(c), &buf); err != nil {
		writeError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("stock-%s.csv", h.now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// MonthlySales returns the 12-month sales breakdown of ?year=, optionally
// for a single ?product=.
func (h *APIHandler) MonthlySales(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
			return
		}
		year = parsed
	}

	report, err := h.deps.Reports.MonthlySales(c.Request.Context(), year, c.Query("product"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// RentalNotices lists open rentals with their urgency, most urgent first.
func (h *APIHandler) RentalNotices(c *gin.Context) {
	notices, err := h.deps.Reports.RentalNotices(c.Request.Context(), h.now())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notices": notices,
		"counts":  analytics.CountByUrgency(notices),
	})
}

func productQuery(c *gin.Context) analytics.ProductQuery {
	q := analytics.ProductQuery{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		Supplier:    c.Query("supplier"),
		MinPrice:    c.Query("minPrice"),
		MaxPrice:    c.Query("maxPrice"),
		MinQuantity: c.Query("minQuantity"),
		MaxQuantity: c.Query("maxQuantity"),
		SortBy:      c.Query("sortBy"),
		Desc:        strings.EqualFold(c.Query("order"), "desc"),
	}
	for _, raw := range c.QueryArray("status") {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				q.Statuses = append(q.Statuses, analytics.StockStatus(s))
			}
		}
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.PageSize, _ = strconv.Atoi(c.Query("pageSize"))
	return q
}
