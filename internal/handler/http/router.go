package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davoodepb/temucore-shop-hub/internal/service"
	"github.com/davoodepb/temucore-shop-hub/pkg/health"
	"github.com/davoodepb/temucore-shop-hub/pkg/middleware"
)

// Services bundles every service the router exposes.
type Services struct {
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Order     *service.OrderService
	Review    *service.ReviewService
	Admin     *service.AdminService
	Content   *service.ContentService
	Chat      *service.ChatService
	Analytics *service.AnalyticsService
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	services Services,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := NewProductHandler(services.Catalog, logger)
	cartHandler := NewCartHandler(services.Cart, logger)
	orderHandler := NewOrderHandler(services.Order, logger)
	reviewHandler := NewReviewHandler(services.Review, logger)
	adminHandler := NewAdminHandler(services.Admin, logger)
	contentHandler := NewContentHandler(services.Content, logger)
	chatHandler := NewChatHandler(services.Chat, logger)
	analyticsHandler := NewAnalyticsHandler(services.Analytics, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public catalog
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{id}", productHandler.GetProduct)
		r.Get("/products/{id}/reviews", reviewHandler.ListProductReviews)

		// Cart, scoped to a shopper session
		r.Route("/cart", func(r chi.Router) {
			r.Use(SessionRequired)

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
		})

		// Checkout and order history
		r.With(SessionRequired).Post("/checkout", orderHandler.Checkout)
		r.Get("/orders", orderHandler.ListMyOrders)
		r.Get("/orders/{id}", orderHandler.GetOrder)

		// Reviews
		r.Post("/reviews", reviewHandler.SubmitReview)

		// Announcements and site content
		r.Get("/announcements", contentHandler.ListActiveAnnouncements)
		r.Get("/content", contentHandler.ListSiteContent)
		r.Get("/content/{section}", contentHandler.GetSiteContent)

		// Support chat
		r.Post("/chat/messages", chatHandler.SendMessage)
		r.Get("/chat/messages", chatHandler.GetThread)

		// Admin back office
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)
			r.Get("/verify", adminHandler.Verify)

			r.Group(func(r chi.Router) {
				r.Use(AdminAuth(services.Admin, logger))

				r.Post("/logout", adminHandler.Logout)

				r.Get("/analytics", analyticsHandler.Overview)

				r.Post("/products", productHandler.CreateProduct)
				r.Put("/products/{id}", productHandler.UpdateProduct)
				r.Delete("/products/{id}", productHandler.DeleteProduct)

				r.Get("/orders", orderHandler.ListOrders)
				r.Put("/orders/{id}/status", orderHandler.UpdateStatus)

				r.Get("/reviews", reviewHandler.ListAllReviews)
				r.Put("/reviews/{id}/approve", reviewHandler.ApproveReview)
				r.Delete("/reviews/{id}", reviewHandler.DeleteReview)

				r.Get("/announcements", contentHandler.ListAnnouncements)
				r.Post("/announcements", contentHandler.CreateAnnouncement)
				r.Put("/announcements/{id}", contentHandler.UpdateAnnouncement)
				r.Delete("/announcements/{id}", contentHandler.DeleteAnnouncement)

				r.Put("/content/{section}", contentHandler.UpsertSiteContent)

				r.Get("/chat/threads", chatHandler.ListThreads)
				r.Put("/chat/threads/read", chatHandler.MarkThreadRead)
			})
		})
	})

	return r
}
