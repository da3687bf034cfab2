package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/resources"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
)

type apiReply struct {
	body string
	err  error
}

// recordingTransport answers by "METHOD /path" and records the order of calls.
type recordingTransport struct {
	replies map[string]apiReply
	calls   []string
	bodies  []any
}

func (f *recordingTransport) Do(_ context.Context, req backend.Request) ([]byte, error) {
	key := req.Method + " " + req.Path
	f.calls = append(f.calls, key)
	f.bodies = append(f.bodies, req.Body)

	r, ok := f.replies[key]
	if !ok {
		return nil, &backend.APIError{Status: http.StatusNotFound, Message: req.Fallback}
	}
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.body), nil
}

func newResourceEngine(t *testing.T, api *recordingTransport) *gin.Engine {
	t.Helper()
	rental, err := resources.NewInwardService(api, models.InwardRental)
	if err != nil {
		t.Fatalf("NewInwardService: %v", err)
	}
	accessory, err := resources.NewInwardService(api, models.InwardAccessory)
	if err != nil {
		t.Fatalf("NewInwardService: %v", err)
	}

	h := NewResourceHandler(ResourceDeps{
		Products:   resources.NewProductService(api),
		Categories: resources.NewCategoryService(api),
		Suppliers:  resources.NewSupplierService(api),
		Users:      resources.NewUserService(api),
		Sales:      resources.NewBillService(api),
		Rentals:    resources.NewRentalService(api),
		Purchases:  resources.NewPurchaseService(api),
		Items:      resources.NewProductItemService(api),
		Inwards: map[models.InwardKind]InwardStore{
			models.InwardRental:    rental,
			models.InwardAccessory: accessory,
		},
	}, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/products", h.ListProducts)
	r.POST("/api/products", h.CreateProduct)
	r.PUT("/api/products/:id", h.UpdateProduct)
	r.DELETE("/api/products/:id", h.DeleteProduct)
	r.PATCH("/api/categories/:id/status", h.SetCategoryStatus)
	r.PATCH("/api/users/:id/active", h.SetUserActive)
	r.POST("/api/rentals/:id/return", h.ReturnRental)
	r.POST("/api/purchases/:id/receive", h.ReceivePurchase)
	r.POST("/api/inwards/:kind", h.CreateInward)
	r.DELETE("/api/inwards/:kind/:id", h.DeleteInward)
	return r
}

func assertCalls(t *testing.T, api *recordingTransport, want ...string) {
	t.Helper()
	if !reflect.DeepEqual(api.calls, want) {
		t.Errorf("calls = %v, want %v", api.calls, want)
	}
}

func TestUpdateProductAnswersWithFreshRead(t *testing.T) {
	api := &recordingTransport{replies: map[string]apiReply{
		"PUT /products/p1": {body: `{"product":{"_id":"p1","name":"Drill"}}`},
		"GET /products/p1": {body: `{"_id":"p1","name":"Drill","quantity":7,"category":{"_id":"c1","name":"Power Tools"}}`},
	}}
	r := newResourceEngine(t, api)

	w := do(r, http.MethodPut, "/api/products/p1", `{"name":"Drill","price":2500,"quantity":7,"unit":"piece","category":"c1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	assertCalls(t, api, "PUT /products/p1", "GET /products/p1")

	var got models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Quantity != 7 || got.Category.Label() != "Power Tools" {
		t.Errorf("expected the re-fetched product, got %s", w.Body.String())
	}
}

func TestCreateProductReloadsCreatedID(t *testing.T) {
	api := &recordingTransport{replies: map[string]apiReply{
		"POST /products":   {body: `{"message":"created","product":{"_id":"p9"}}`},
		"GET /products/p9": {body: `{"_id":"p9","name":"Rope","quantity":40}`},
	}}
	r := newResourceEngine(t, api)

	w := do(r, http.MethodPost, "/api/products", `{"name":"Rope","price":50,"quantity":40,"unit":"piece"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	assertCalls(t, api, "POST /products", "GET /products/p9")
}

func TestCreateWithoutIDFails(t *testing.T) {
	api := &recordingTransport{replies: map[string]apiReply{
		"POST /products": {body: `{"message":"created"}`},
	}}
	r := newResourceEngine(t, api)

	w := do(r, http.MethodPost, "/api/products", `{"name":"Rope","price":50,"quantity":40}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	assertCalls(t, api, "POST /products")
}

func TestInvalidProductNeverReachesAPI(t *testing.T) {
	api := &recordingTransport{}
	r := newResourceEngine(t, api)

	w := do(r, http.MethodPost, "/api/products", `{"name":"  ","price":50}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	assertCalls(t, api)
}

func TestDeleteProductRelists(t *testing.T) {
	api := &recordingTransport{replies: map[string]apiReply{
		"DELETE /products/p1": {body: `{"message":"deleted"}`},
		"GET /products":       {body: `{"products":[{"_id":"p2","name":"Tent"}],"currentPage":1,"totalPages":1,"total":1}`},
	}}
	r := newResourceEngine(t, api)

	w := do(r, http.MethodDelete, "/api/products/p1?search=tent", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	assertCalls(t, api, "DELETE /products/p1", "GET /products")
	if !strings.Contains(w.Body.String(), `"_id":"p2"`) {
		t.Errorf("expected the refreshed list, got %s", w.Body.String())
	}
}

func TestCategoryStatusThenGet(t *testing.T) {
	api := &recordingTransport{replies: map[string]apiReply{
		"PATCH /categories/c1/status": {body: `{"message":"updated"}`},
		"GET /categories/c1":          {body: `{"category":{"_id":"c1","name":"Tools","status":"inactive"}}`},
	}}
	r := newResourceEngine(t, api)

	w := do(r, http.MethodPatch, "/api/categories/c1/status", `{"status":"inactive"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	assertCalls(t, api, "PATCH /categories/c1/status", "GET /categories/c1")

	sent, _ := json.Marshal(api.bodies[0])
	if string(sent) != `{"status":"inactive"}` {
		t.Errorf("unexpected status body %s", sent)
	}
	if !strings.Contains(w.Body.String(), `"status":"inactive"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestFailedWriteSkipsReload(t *testing.T) {
	api := &recordingTransport{replies: map[string]apiReply{
		"PATCH /categories/c1/status": {err: &backend.APIError{Status: http.StatusInternalServerError, Message: "db down"}},
	}}
	r := newResourceEngine(t, api)

	if w := do(r, http.MethodPatch, "/api/categories/c1/status", `{"status":"inactive"}`); w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	assertCalls(t, api, "PATCH /categories/c1/status")

	if w := do(r, http.MethodPatch, "/api/categories/c1/status", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a status, got %d", w.Code)
	}
}

func TestSetUserActiveAndReturnRental(t *testing.T) {
	api := &recordingTransport{replies: map[string]apiReply{
		"PATCH /users/u1/status":   {body: `{}`},
		"GET /users/u1":            {body: `{"user":{"_id":"u1","username":"asha","role":"staff","isActive":false}}`},
		"PATCH /rentals/r1/status": {body: `{}`},
		"GET /rentals/r1":          {body: `{"_id":"r1","status":"returned"}`},
	}}
	r := newResourceEngine(t, api)

	if w := do(r, http.MethodPatch, "/api/users/u1/active", `{"isActive":false}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/api/rentals/r1/return", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	assertCalls(t, api, "PATCH /users/u1/status", "GET /users/u1", "PATCH /rentals/r1/status", "GET /rentals/r1")
}

func TestReceivePurchaseMergesLinesAndReloads(t *testing.T) {
	api := &recordingTransport{replies: map[string]apiReply{
		"GET /purchases/po1":          {body: `{"_id":"po1","status":"ordered","items":[{"product":"p1","quantity":5},{"product":"p2","quantity":4}]}`},
		"POST /purchases/po1/receive": {body: `{"message":"received"}`},
	}}
	r := newResourceEngine(t, api)

	w := do(r, http.MethodPost, "/api/purchases/po1/receive",
		`{"items":[{"productId":"p1","receivedQuantity":2},{"productId":"p1","receivedQuantity":1},{"productId":"p2","receivedQuantity":4}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	assertCalls(t, api, "GET /purchases/po1", "POST /purchases/po1/receive", "GET /purchases/po1")

	sent, _ := json.Marshal(api.bodies[1])
	if want := `{"items":[{"productId":"p1","receivedQuantity":3},{"productId":"p2","receivedQuantity":4}]}`; string(sent) != want {
		t.Errorf("payload = %s, want %s", sent, want)
	}
}

func TestReceiveValidationBody(t *testing.T) {
	api := &recordingTransport{replies: map[string]apiReply{
		"GET /purchases/po1": {body: `{"_id":"po1","items":[{"product":"p1","quantity":2,"receivedQuantity":2}]}`},
	}}
	r := newResourceEngine(t, api)

	w := do(r, http.MethodPost, "/api/purchases/po1/receive", `{"items":[{"productId":"p1","receivedQuantity":1}]}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "receive at least one item" || body["field"] != "items" {
		t.Errorf("unexpected body %v", body)
	}
	assertCalls(t, api, "GET /purchases/po1")
}

func TestCreateInwardReloads(t *testing.T) {
	api := &recordingTransport{replies: map[string]apiReply{
		"POST /rental-inwards":    {body: `{"inward":{"_id":"in1"}}`},
		"GET /rental-inwards/in1": {body: `{"_id":"in1","status":"pending","totalAmount":10}`},
	}}
	r := newResourceEngine(t, api)

	w := do(r, http.MethodPost, "/api/inwards/rental", `{"supplier":"s1","items":[{"product":"p1","quantity":1,"purchaseCost":10}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	assertCalls(t, api, "POST /rental-inwards", "GET /rental-inwards/in1")
	if !strings.Contains(w.Body.String(), `"status":"pending"`) {
		t.Errorf("expected the re-fetched inward, got %s", w.Body.String())
	}

	if w := do(r, http.MethodPost, "/api/inwards/consumable", `{}`); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown kind, got %d", w.Code)
	}
}

func TestDeleteInwardByKind(t *testing.T) {
	api := &recordingTransport{replies: map[string]apiReply{
		"DELETE /rental-inwards/in1": {body: `{}`},
		"GET /rental-inwards":        {body: `{"rentalInwards":[]}`},
	}}
	r := newResourceEngine(t, api)

	if w := do(r, http.MethodDelete, "/api/inwards/rental/in1", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	assertCalls(t, api, "DELETE /rental-inwards/in1", "GET /rental-inwards")

	api.calls = nil
	if w := do(r, http.MethodDelete, "/api/inwards/accessory/in2", ""); w.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501 for accessory delete, got %d", w.Code)
	}
	assertCalls(t, api)
}
