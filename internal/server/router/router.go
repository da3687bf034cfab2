package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares. The webhook
// routes are only mounted when webhook is non-nil.
func New(api *handlers.APIHandler, res *handlers.ResourceHandler, webhook *handlers.WebhookHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api")
	v1.GET("/dashboard", api.Dashboard)
	v1.GET("/reports/stock", api.StockReport)
	v1.GET("/reports/stock.csv", api.StockCSV)
	v1.GET("/reports/monthly-sales", api.MonthlySales)
	v1.GET("/notifications/rentals", api.RentalNotices)
	v1.GET("/reports/selling", res.SellingReport)

	v1.GET("/products", res.ListProducts)
	v1.POST("/products", res.CreateProduct)
	v1.GET("/products/:id", res.GetProduct)
	v1.PUT("/products/:id", res.UpdateProduct)
	v1.DELETE("/products/:id", res.DeleteProduct)
	v1.GET("/products/:id/sales", res.ProductSales)

	v1.GET("/categories", res.ListCategories)
	v1.POST("/categories", res.CreateCategory)
	v1.PATCH("/categories/:id/status", res.SetCategoryStatus)
	v1.DELETE("/categories/:id", res.DeleteCategory)

	v1.GET("/suppliers", res.ListSuppliers)
	v1.PATCH("/suppliers/:id/status", res.SetSupplierStatus)
	v1.GET("/suppliers/:id/products", res.SupplierProducts)

	v1.GET("/users", res.ListUsers)
	v1.PATCH("/users/:id/active", res.SetUserActive)

	v1.GET("/bills", res.ListBills)

	v1.POST("/rentals", res.CreateRental)
	v1.POST("/rentals/:id/return", res.ReturnRental)
	v1.GET("/customers/:id/rentals", res.CustomerRentals)

	v1.POST("/purchases/:id/receive", res.ReceivePurchase)
	v1.POST("/purchases/:id/payments", res.AddPurchasePayment)
	v1.PATCH("/purchases/:id/status", res.SetPurchaseStatus)

	v1.GET("/inwards/:kind", res.ListInwards)
	v1.POST("/inwards/:kind", res.CreateInward)
	v1.GET("/inwards/:kind/:id", res.GetInward)
	v1.PATCH("/inwards/:kind/:id/status", res.SetInwardStatus)
	v1.DELETE("/inwards/:kind/:id", res.DeleteInward)

	v1.GET("/product-items", res.ListProductItems)
	v1.POST("/product-items", res.CreateProductItem)
	v1.PATCH("/product-items/:id/status", res.SetProductItemStatus)
	v1.DELETE("/product-items/:id", res.DeleteProductItem)

	if webhook != nil {
		r.GET("/webhook", webhook.Verify)
		r.POST("/webhook", webhook.Receive)
		r.POST("/send-message", webhook.SendMessage)
	}

	if logger != nil {
		logger.Info("router initialized", zap.Bool("whatsapp", webhook != nil))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
