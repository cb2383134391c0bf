package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"animart/internal/currency"
	"animart/internal/handlers"
	"animart/internal/models"
	"animart/internal/payment"
	"animart/internal/repositories"
	"animart/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

// testEnv wires handlers against in-memory repositories, with the JWT
// middleware replaced by a stub that authenticates every request as user-1.
type testEnv struct {
	app      *fiber.App
	orders   *repositories.MockOrderRepository
	products *repositories.MockProductRepository
	settings *repositories.MockSettingsRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	_ = productRepo.Create(&models.Product{
		ID:               "prod-1",
		Name:             "Scout Regiment Hoodie",
		Price:            2499,
		Stock:            10,
		Sizes:            []string{"S", "M", "L"},
		Images:           []string{"/img/hoodie.jpg"},
		MaxOrderQuantity: 5,
	})
	orderRepo := repositories.NewMockOrderRepository()
	reviewRepo := repositories.NewMockReviewRepository()
	settingsRepo := repositories.NewMockSettingsRepository()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	gateway := payment.NewMockGateway("test-secret")

	orderService := services.NewOrderService(orderRepo, productRepo, settingsRepo, gateway, publisher)
	reviewService := services.NewReviewService(reviewRepo, orderRepo)
	wishlistService := services.NewWishlistService(productRepo)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "user-1")
		c.Locals("role", models.RoleAdmin)
		return c.Next()
	})

	handlers.NewWishlistHandler(wishlistService).RegisterRoutes(app)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(app)
	handlers.NewOrderHandler(orderService).RegisterRoutes(app)
	handlers.NewOrderHandler(orderService).RegisterAdminRoutes(app.Group("/admin"))
	handlers.NewSettingsHandler(settingsRepo).RegisterAdminRoutes(app.Group("/admin"))
	handlers.NewCurrencyHandler(currency.NewRegistry()).RegisterRoutes(app)

	return &testEnv{
		app:      app,
		orders:   orderRepo,
		products: productRepo,
		settings: settingsRepo,
	}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return out
}

func seedOrder(t *testing.T, env *testEnv, userID, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID: userID,
		Status: status,
		Items: []models.OrderItem{
			{ProductID: "prod-1", Name: "Scout Regiment Hoodie", Quantity: 1, Price: 2499},
		},
	}
	assert.NoError(t, env.orders.Create(order))
	return order
}

func TestWishlistToggle(t *testing.T) {
	env := newTestEnv(t)

	// First toggle adds
	resp := env.request(t, http.MethodPost, "/wishlist/toggle", fiber.Map{"product_id": "prod-1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["added"])

	// Second toggle removes
	resp = env.request(t, http.MethodPost, "/wishlist/toggle", fiber.Map{"product_id": "prod-1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, false, body["added"])
	wishlist, _ := body["wishlist"].(map[string]interface{})
	assert.Equal(t, float64(0), wishlist["item_count"])
}

func TestWishlistToggleUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/wishlist/toggle", fiber.Map{"product_id": "prod-missing"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestReviewEligibilityEndpoint(t *testing.T) {
	env := newTestEnv(t)
	delivered := seedOrder(t, env, "user-1", models.OrderDelivered)
	pending := seedOrder(t, env, "user-1", models.OrderPending)
	foreign := seedOrder(t, env, "user-2", models.OrderDelivered)

	resp := env.request(t, http.MethodGet, "/reviews/eligibility/"+delivered.ID+"?product_id=prod-1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["eligible"])

	resp = env.request(t, http.MethodGet, "/reviews/eligibility/"+pending.ID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, false, body["eligible"])

	resp = env.request(t, http.MethodGet, "/reviews/eligibility/"+foreign.ID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateReviewEndpoint(t *testing.T) {
	env := newTestEnv(t)
	delivered := seedOrder(t, env, "user-1", models.OrderDelivered)

	review := fiber.Map{
		"order_id":   delivered.ID,
		"product_id": "prod-1",
		"rating":     5,
		"title":      "Great quality",
		"comment":    "Fits perfectly.",
	}

	resp := env.request(t, http.MethodPost, "/reviews/", review)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Posting again for the same product and order conflicts
	resp = env.request(t, http.MethodPost, "/reviews/", review)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateReviewValidation(t *testing.T) {
	env := newTestEnv(t)
	delivered := seedOrder(t, env, "user-1", models.OrderDelivered)

	// Rating outside 1..5
	resp := env.request(t, http.MethodPost, "/reviews/", fiber.Map{
		"order_id":   delivered.ID,
		"product_id": "prod-1",
		"rating":     9,
		"title":      "Too good",
		"comment":    "Off the scale.",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	errors, _ := body["errors"].(map[string]interface{})
	assert.Contains(t, errors, "Rating")
}

func TestAdminOrderStatusUpdate(t *testing.T) {
	env := newTestEnv(t)
	order := seedOrder(t, env, "user-1", models.OrderPending)

	resp := env.request(t, http.MethodPatch, "/admin/orders/"+order.ID+"/status", fiber.Map{"status": models.OrderShipped})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	updated, err := env.orders.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.Status)

	// Unknown status
	resp = env.request(t, http.MethodPatch, "/admin/orders/"+order.ID+"/status", fiber.Map{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown order
	resp = env.request(t, http.MethodPatch, "/admin/orders/order-missing/status", fiber.Map{"status": models.OrderShipped})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderOwnershipOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	foreign := seedOrder(t, env, "user-2", models.OrderPending)

	resp := env.request(t, http.MethodGet, "/orders/"+foreign.ID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/orders/order-missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestSettingsEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/admin/settings/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(2000), body["free_shipping_threshold"])

	resp = env.request(t, http.MethodPut, "/admin/settings/", fiber.Map{
		"free_shipping_threshold": 1500,
		"flat_shipping_rate":      49,
		"tax_rate":                0.12,
		"currency_code":           "INR",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	stored, err := env.settings.Get()
	assert.NoError(t, err)
	assert.Equal(t, 1500.0, stored.FreeShippingThreshold)
	assert.Equal(t, 0.12, stored.TaxRate)

	// A tax rate above 100% fails validation
	resp = env.request(t, http.MethodPut, "/admin/settings/", fiber.Map{
		"free_shipping_threshold": 1500,
		"flat_shipping_rate":      49,
		"tax_rate":                1.5,
		"currency_code":           "INR",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCurrencyEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/currencies/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	def, _ := body["default"].(map[string]interface{})
	assert.Equal(t, "INR", def["code"])

	resp = env.request(t, http.MethodGet, "/currencies/convert?code=USD&amount=100", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.InDelta(t, 1.2, body["amount"], 0.001)

	resp = env.request(t, http.MethodGet, "/currencies/convert?code=XYZ&amount=100", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
