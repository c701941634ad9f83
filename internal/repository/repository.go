package repository

import (
	"context"
	"time"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category  *string
	Search    *string
	Featured  *bool
	FlashDeal *bool
	Page      int
	PerPage   int
}

// StockDecrement is a single conditional stock deduction applied at checkout.
type StockDecrement struct {
	ProductID string
	Quantity  int
}

// ProductRepository defines the interface for catalog persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the catalog.
	Create(ctx context.Context, p *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns products matching the given filter with the total count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)

	// ListAll returns the full catalog, newest first.
	ListAll(ctx context.Context) ([]domain.Product, error)

	// Update overwrites an existing product.
	Update(ctx context.Context, p *domain.Product) error

	// Delete removes a product from the catalog.
	Delete(ctx context.Context, id string) error

	// DecrementStock atomically applies all of the given decrements, or none
	// of them. It fails with ErrInsufficientStock if any product lacks the
	// requested quantity, so concurrent checkouts can never oversell.
	DecrementStock(ctx context.Context, items []StockDecrement) error

	// UpdateRating overwrites the denormalized rating aggregate on a product.
	UpdateRating(ctx context.Context, productID string, rating float64, reviewCount int) error
}

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its session ID.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart by session ID.
	Delete(ctx context.Context, sessionID string) error
}

// OrderFilter narrows order listings for the admin back office.
type OrderFilter struct {
	Status  *string
	Page    int
	PerPage int
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create appends a new order.
	Create(ctx context.Context, o *domain.Order) error

	// GetByID retrieves an order by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns orders matching the given filter with the total count,
	// newest first.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)

	// ListByEmail returns all orders placed with the given customer email,
	// newest first.
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)

	// ListAll returns every order; used by the analytics overview.
	ListAll(ctx context.Context) ([]domain.Order, error)

	// UpdateStatus overwrites the status of an order.
	UpdateStatus(ctx context.Context, id, status string) error
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create appends a new review.
	Create(ctx context.Context, r *domain.Review) error

	// GetByID retrieves a review by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// ListByProduct returns reviews for a product, newest first. When
	// approvedOnly is set, unapproved reviews are filtered out.
	ListByProduct(ctx context.Context, productID string, approvedOnly bool) ([]domain.Review, error)

	// ListAll returns every review, newest first.
	ListAll(ctx context.Context) ([]domain.Review, error)

	// SetApproved marks a review as approved.
	SetApproved(ctx context.Context, id string) error

	// Delete removes a review.
	Delete(ctx context.Context, id string) error

	// CountPending returns the number of reviews awaiting approval.
	CountPending(ctx context.Context) (int, error)
}

// AnnouncementRepository defines the interface for announcement persistence.
type AnnouncementRepository interface {
	// Create appends a new announcement.
	Create(ctx context.Context, a *domain.Announcement) error

	// List returns announcements, newest first. When activeOnly is set,
	// inactive announcements are filtered out.
	List(ctx context.Context, activeOnly bool) ([]domain.Announcement, error)

	// Update overwrites an existing announcement.
	Update(ctx context.Context, a *domain.Announcement) error

	// Delete removes an announcement.
	Delete(ctx context.Context, id string) error
}

// SiteContentRepository defines the interface for editable site copy.
type SiteContentRepository interface {
	// Get retrieves the content block for a section.
	Get(ctx context.Context, section string) (*domain.SiteContent, error)

	// Upsert creates or overwrites the content block for a section.
	Upsert(ctx context.Context, c *domain.SiteContent) error

	// List returns all content blocks.
	List(ctx context.Context) ([]domain.SiteContent, error)
}

// ChatRepository defines the interface for support chat persistence.
type ChatRepository interface {
	// Create appends a new chat message.
	Create(ctx context.Context, m *domain.ChatMessage) error

	// ListByEmail returns the full thread for a customer, oldest first.
	ListByEmail(ctx context.Context, email string) ([]domain.ChatMessage, error)

	// ListThreads summarizes all customer threads for the admin inbox,
	// most recently active first.
	ListThreads(ctx context.Context) ([]domain.ChatThread, error)

	// MarkRead marks all customer-sent messages in a thread as read.
	MarkRead(ctx context.Context, email string) error
}

// SessionRepository stores opaque admin session tokens with a TTL.
type SessionRepository interface {
	// Save stores a session token for the given duration.
	Save(ctx context.Context, token string, ttl time.Duration) error

	// Exists reports whether the token is present and unexpired.
	Exists(ctx context.Context, token string) (bool, error)

	// Delete removes a session token.
	Delete(ctx context.Context, token string) error
}
