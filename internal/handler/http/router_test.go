package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/repository/localstore"
	"github.com/davoodepb/temucore-shop-hub/internal/service"
	"github.com/davoodepb/temucore-shop-hub/pkg/health"
	"github.com/davoodepb/temucore-shop-hub/pkg/httputil"
)

// ============================================================================
// Test helpers
// ============================================================================

// testEnv wires the full router over in-memory repositories so requests are
// exercised end-to-end through middleware, handlers and services.
type testEnv struct {
	router      http.Handler
	store       *localstore.Store
	productRepo *localstore.ProductRepository
	orderRepo   *localstore.OrderRepository
	reviewRepo  *localstore.ReviewRepository
	chatRepo    *localstore.ChatRepository
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := testLogger()
	store := localstore.NewStore(localstore.NewMemoryBackend())

	productRepo := localstore.NewProductRepository(store)
	cartRepo := localstore.NewCartRepository(store)
	orderRepo := localstore.NewOrderRepository(store)
	reviewRepo := localstore.NewReviewRepository(store)
	announcementRepo := localstore.NewAnnouncementRepository(store)
	siteContentRepo := localstore.NewSiteContentRepository(store)
	chatRepo := localstore.NewChatRepository(store)
	sessionRepo := localstore.NewSessionRepository(store)

	services := Services{
		Catalog:   service.NewCatalogService(productRepo, nil, logger),
		Cart:      service.NewCartService(cartRepo, productRepo, logger),
		Order:     service.NewOrderService(orderRepo, cartRepo, productRepo, nil, logger, 0),
		Review:    service.NewReviewService(reviewRepo, productRepo, nil, logger),
		Admin:     service.NewAdminService(sessionRepo, []string{"admin123"}, time.Hour, logger),
		Content:   service.NewContentService(announcementRepo, siteContentRepo, logger),
		Chat:      service.NewChatService(chatRepo, nil, logger),
		Analytics: service.NewAnalyticsService(orderRepo, productRepo, reviewRepo, logger),
	}

	return &testEnv{
		router:      NewRouter(services, health.NewHandler(), logger),
		store:       store,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		reviewRepo:  reviewRepo,
		chatRepo:    chatRepo,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// login authenticates as admin and returns the session token.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/v1/admin/login", map[string]string{"password": "admin123"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) seedProduct(t *testing.T, id string, price int64, stock int) *domain.Product {
	t.Helper()

	now := time.Now().UTC()
	product := &domain.Product{
		ID:        id,
		Name:      "Wireless Earbuds",
		Price:     price,
		Category:  "electronics",
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, e.productRepo.Create(context.Background(), product))
	return product
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

func sessionHeader(sessionID string) map[string]string {
	return map[string]string{HeaderSessionID: sessionID}
}

func adminHeader(token string) map[string]string {
	return map[string]string{HeaderAdminToken: token}
}

// ============================================================================
// Cart endpoints
// ============================================================================

func TestCartFlow_AddUpdateRemove(t *testing.T) {
	env := setupEnv(t)
	env.seedProduct(t, "prod-1", 1999, 5)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1"}, sessionHeader("sess-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Added to cart!", resp.Message)

	rec = env.do(t, http.MethodPut, "/api/v1/cart/items/prod-1",
		UpdateQuantityRequest{Quantity: 3}, sessionHeader("sess-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Updated!", decodeResponse(t, rec).Message)

	rec = env.do(t, http.MethodGet, "/api/v1/cart", nil, sessionHeader("sess-1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	resp = decodeResponse(t, rec)
	cart, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	items, ok := cart["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)

	rec = env.do(t, http.MethodDelete, "/api/v1/cart/items/prod-1", nil, sessionHeader("sess-1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Item removed", decodeResponse(t, rec).Message)
}

func TestCart_MissingSessionHeader(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/cart", nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "X-Session-ID")
}

func TestAddItem_OutOfStock(t *testing.T) {
	env := setupEnv(t)
	env.seedProduct(t, "prod-1", 1999, 0)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1"}, sessionHeader("sess-1"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Out of stock!", resp.Error.Message)
}

func TestAddItem_InsufficientStock(t *testing.T) {
	env := setupEnv(t)
	env.seedProduct(t, "prod-1", 1999, 1)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1"}, sessionHeader("sess-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1"}, sessionHeader("sess-1"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Only 1 available!", resp.Error.Message)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "nope"}, sessionHeader("sess-1"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Item not found", resp.Error.Message)
}

func TestAddItem_RequestedQuantityHonored(t *testing.T) {
	env := setupEnv(t)
	env.seedProduct(t, "prod-1", 1999, 3)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1", Quantity: 3}, sessionHeader("sess-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	cart, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	items, ok := cart["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), item["quantity"])
}

func TestAddItem_CombinedQuantityBeyondStock(t *testing.T) {
	env := setupEnv(t)
	env.seedProduct(t, "prod-1", 1999, 3)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1", Quantity: 2}, sessionHeader("sess-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1", Quantity: 2}, sessionHeader("sess-1"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Only 3 available!", resp.Error.Message)

	// The rejected add must leave the cart untouched.
	rec = env.do(t, http.MethodGet, "/api/v1/cart", nil, sessionHeader("sess-1"))
	cart, ok := decodeResponse(t, rec).Data.(map[string]any)
	require.True(t, ok)
	items, ok := cart["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), item["quantity"])
}

func TestAddItem_NegativeQuantityRejected(t *testing.T) {
	env := setupEnv(t)
	env.seedProduct(t, "prod-1", 1999, 3)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1", Quantity: -1}, sessionHeader("sess-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

// ============================================================================
// Checkout and orders
// ============================================================================

func checkoutBody() service.CheckoutInput {
	return service.CheckoutInput{
		CustomerName:  "Dana Smith",
		CustomerEmail: "dana@example.com",
		Address:       "1 Main St",
	}
}

func TestCheckout_Success(t *testing.T) {
	env := setupEnv(t)
	env.seedProduct(t, "prod-1", 1999, 5)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1"}, sessionHeader("sess-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody(), sessionHeader("sess-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Order placed!", resp.Message)
	order, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "paid", order["status"])

	// Stock was decremented and the cart is now empty.
	product, err := env.productRepo.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 4, product.Stock)

	rec = env.do(t, http.MethodGet, "/api/v1/cart", nil, sessionHeader("sess-1"))
	resp = decodeResponse(t, rec)
	cart, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Empty(t, cart["items"])
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody(), sessionHeader("sess-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "cart is empty")
}

func TestListMyOrders_ByEmail(t *testing.T) {
	env := setupEnv(t)
	env.seedProduct(t, "prod-1", 1999, 5)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1"}, sessionHeader("sess-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody(), sessionHeader("sess-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/orders?email=dana@example.com", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	orders, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, orders, 1)
}

func TestAdminUpdateOrderStatus_InvalidTransition(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	now := time.Now().UTC()
	require.NoError(t, env.orderRepo.Create(context.Background(), &domain.Order{
		ID:            "order-1",
		Status:        domain.OrderStatusDelivered,
		CustomerEmail: "dana@example.com",
		CreatedAt:     now,
		UpdatedAt:     now,
	}))

	rec := env.do(t, http.MethodPut, "/api/v1/admin/orders/order-1/status",
		UpdateStatusRequest{Status: domain.OrderStatusPending}, adminHeader(token))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// ============================================================================
// Catalog admin endpoints
// ============================================================================

func TestAdminCreateProduct_RequiresToken(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/products",
		map[string]any{"name": "Desk Lamp", "price": 2999, "category": "home", "stock": 3}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminCreateProduct_Success(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/products",
		map[string]any{"name": "Desk Lamp", "price": 2999, "category": "home", "stock": 3},
		adminHeader(token))

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	product, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, product["id"])

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%s", product["id"]), nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminCreateProduct_ValidationError(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/products",
		map[string]any{"name": "", "price": 0}, adminHeader(token))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestListProducts_FiltersByCategory(t *testing.T) {
	env := setupEnv(t)
	env.seedProduct(t, "prod-1", 1999, 5)

	now := time.Now().UTC()
	require.NoError(t, env.productRepo.Create(context.Background(), &domain.Product{
		ID: "prod-2", Name: "Mug", Price: 899, Category: "kitchen", Stock: 10,
		CreatedAt: now, UpdatedAt: now,
	}))

	rec := env.do(t, http.MethodGet, "/api/v1/products?category=kitchen", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	page, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), page["total_count"])
}

// ============================================================================
// Reviews
// ============================================================================

func TestReviewLifecycle_SubmitApproveList(t *testing.T) {
	env := setupEnv(t)
	env.seedProduct(t, "prod-1", 1999, 5)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/reviews", service.SubmitReviewInput{
		ProductID: "prod-1",
		UserName:  "dana",
		Rating:    4,
		Comment:   "Works great",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	review, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	reviewID, _ := review["id"].(string)
	require.NotEmpty(t, reviewID)

	// Unapproved reviews are not publicly visible.
	rec = env.do(t, http.MethodGet, "/api/v1/products/prod-1/reviews", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body, ok := decodeResponse(t, rec).Data.(map[string]any)
	require.True(t, ok)
	assert.Empty(t, body["reviews"])

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/reviews/%s/approve", reviewID), nil, adminHeader(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/products/prod-1/reviews", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body, ok = decodeResponse(t, rec).Data.(map[string]any)
	require.True(t, ok)
	reviews, ok := body["reviews"].([]any)
	require.True(t, ok)
	assert.Len(t, reviews, 1)

	// Approval refreshed the denormalized product rating.
	product, err := env.productRepo.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, product.Rating)
	assert.Equal(t, 1, product.ReviewCount)
}

func TestSubmitReview_UnknownProduct(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/reviews", service.SubmitReviewInput{
		ProductID: "nope",
		UserName:  "dana",
		Rating:    5,
	}, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// Announcements and site content
// ============================================================================

func TestAnnouncements_PublicSeesOnlyActive(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	for _, a := range []service.CreateAnnouncementInput{
		{Title: "Summer sale", Message: "20% off", IsActive: true},
		{Title: "Draft", Message: "not yet", IsActive: false},
	} {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/announcements", a, adminHeader(token))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/api/v1/announcements", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	public, ok := decodeResponse(t, rec).Data.([]any)
	require.True(t, ok)
	assert.Len(t, public, 1)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/announcements", nil, adminHeader(token))
	require.Equal(t, http.StatusOK, rec.Code)
	all, ok := decodeResponse(t, rec).Data.([]any)
	require.True(t, ok)
	assert.Len(t, all, 2)
}

func TestSiteContent_UpsertAndGet(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPut, "/api/v1/admin/content/about",
		service.UpsertSiteContentInput{Content: "We sell things."}, adminHeader(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/content/about", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	block, ok := decodeResponse(t, rec).Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "We sell things.", block["content"])
}

// ============================================================================
// Chat
// ============================================================================

func TestChat_CustomerAndAdminThread(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/chat/messages", service.SendMessageInput{
		CustomerEmail: "dana@example.com",
		CustomerName:  "Dana",
		Message:       "Where is my order?",
		Sender:        domain.ChatSenderCustomer,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/chat/threads", nil, adminHeader(token))
	require.Equal(t, http.StatusOK, rec.Code)
	threads, ok := decodeResponse(t, rec).Data.([]any)
	require.True(t, ok)
	require.Len(t, threads, 1)
	thread, ok := threads[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), thread["unread_count"])

	rec = env.do(t, http.MethodPut, "/api/v1/admin/chat/threads/read?email=dana@example.com", nil, adminHeader(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/chat/messages?email=dana@example.com", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	messages, ok := decodeResponse(t, rec).Data.([]any)
	require.True(t, ok)
	assert.Len(t, messages, 1)
}

// ============================================================================
// Admin sessions
// ============================================================================

func TestAdminLogin_WrongPassword(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/login", map[string]string{"password": "guess"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLogout_RevokesToken(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/logout", nil, adminHeader(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/analytics", nil, adminHeader(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminVerify(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/verify", nil, adminHeader(token))
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := decodeResponse(t, rec).Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])

	rec = env.do(t, http.MethodGet, "/api/v1/admin/verify", nil, adminHeader("bogus"))
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok = decodeResponse(t, rec).Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, data["valid"])
}

// ============================================================================
// Analytics
// ============================================================================

func TestAnalyticsOverview(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)
	env.seedProduct(t, "prod-1", 1999, 5)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1"}, sessionHeader("sess-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody(), sessionHeader("sess-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/analytics", nil, adminHeader(token))

	assert.Equal(t, http.StatusOK, rec.Code)
	overview, ok := decodeResponse(t, rec).Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1999), overview["total_revenue"])
	assert.Equal(t, float64(1), overview["total_orders"])
}

// ============================================================================
// Content-Type middleware
// ============================================================================

func TestContentTypeJSON_RejectsNonJSONBody(t *testing.T) {
	env := setupEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", bytes.NewReader([]byte("plain")))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
