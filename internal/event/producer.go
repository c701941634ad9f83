package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	pkgkafka "github.com/davoodepb/temucore-shop-hub/pkg/kafka"
	"github.com/davoodepb/temucore-shop-hub/pkg/logger"
)

// Kafka topic constants for storefront domain events.
const (
	TopicOrderPlaced        = "storefront.order.placed"
	TopicOrderStatusChanged = "storefront.order.status_changed"
	TopicStockChanged       = "storefront.product.stock_changed"
	TopicReviewSubmitted    = "storefront.review.submitted"
	TopicReviewApproved     = "storefront.review.approved"
	TopicChatMessageSent    = "storefront.chat.message_sent"
)

// Aggregate type constants.
const (
	AggregateTypeOrder   = "order"
	AggregateTypeProduct = "product"
	AggregateTypeReview  = "review"
	AggregateTypeChat    = "chat"
)

// Source identifier for events originating from the storefront service.
const SourceStorefront = "storefront"

// OrderPlacedData is the payload for an order.placed event (full order snapshot).
type OrderPlacedData struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	Items         []OrderItemData `json:"items"`
	Total         int64           `json:"total"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
}

// OrderItemData is the event payload for an order item.
type OrderItemData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderStatusChangedData is the payload for an order.status_changed event.
type OrderStatusChangedData struct {
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// StockChangedData is the payload for a product.stock_changed event.
type StockChangedData struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
	NewStock  int    `json:"new_stock"`
}

// ReviewSubmittedData is the payload for a review.submitted event.
type ReviewSubmittedData struct {
	ReviewID  string `json:"review_id"`
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
}

// ReviewApprovedData is the payload for a review.approved event.
type ReviewApprovedData struct {
	ReviewID  string `json:"review_id"`
	ProductID string `json:"product_id"`
}

// ChatMessageSentData is the payload for a chat.message_sent event.
type ChatMessageSentData struct {
	MessageID     string `json:"message_id"`
	CustomerEmail string `json:"customer_email"`
	Sender        string `json:"sender"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// newEvent builds the envelope and stamps it with the request's correlation
// ID so published messages can be traced back to the originating request.
func (p *Producer) newEvent(ctx context.Context, eventType, aggregateID, aggregateType string, data any) (*pkgkafka.Event, error) {
	event, err := pkgkafka.NewEvent(eventType, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return nil, err
	}

	return event.WithCorrelationID(logger.CorrelationIDFromContext(ctx)), nil
}

// PublishOrderPlaced publishes an order.placed event with the full order snapshot.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	items := make([]OrderItemData, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemData{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
		}
	}

	data := OrderPlacedData{
		ID:            order.ID,
		Status:        order.Status,
		Items:         items,
		Total:         order.Total,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
	}

	event, err := p.newEvent(ctx, TopicOrderPlaced, order.ID, AggregateTypeOrder, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("order_id", order.ID),
		slog.Int64("total", order.Total),
	)

	return nil
}

// PublishOrderStatusChanged publishes an order.status_changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, orderID, oldStatus, newStatus string) error {
	data := OrderStatusChangedData{
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}

	event, err := p.newEvent(ctx, TopicOrderStatusChanged, orderID, AggregateTypeOrder, data)
	if err != nil {
		return fmt.Errorf("create order.status_changed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderStatusChanged, event); err != nil {
		return fmt.Errorf("publish order.status_changed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.status_changed event",
		slog.String("order_id", orderID),
		slog.String("old_status", oldStatus),
		slog.String("new_status", newStatus),
	)

	return nil
}

// PublishStockChanged publishes a product.stock_changed event.
func (p *Producer) PublishStockChanged(ctx context.Context, productID string, delta, newStock int) error {
	data := StockChangedData{
		ProductID: productID,
		Delta:     delta,
		NewStock:  newStock,
	}

	event, err := p.newEvent(ctx, TopicStockChanged, productID, AggregateTypeProduct, data)
	if err != nil {
		return fmt.Errorf("create product.stock_changed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicStockChanged, event); err != nil {
		return fmt.Errorf("publish product.stock_changed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.stock_changed event",
		slog.String("product_id", productID),
		slog.Int("delta", delta),
		slog.Int("new_stock", newStock),
	)

	return nil
}

// PublishReviewSubmitted publishes a review.submitted event.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, review *domain.Review) error {
	data := ReviewSubmittedData{
		ReviewID:  review.ID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
	}

	event, err := p.newEvent(ctx, TopicReviewSubmitted, review.ID, AggregateTypeReview, data)
	if err != nil {
		return fmt.Errorf("create review.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewSubmitted, event); err != nil {
		return fmt.Errorf("publish review.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.submitted event",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return nil
}

// PublishReviewApproved publishes a review.approved event.
func (p *Producer) PublishReviewApproved(ctx context.Context, reviewID, productID string) error {
	data := ReviewApprovedData{
		ReviewID:  reviewID,
		ProductID: productID,
	}

	event, err := p.newEvent(ctx, TopicReviewApproved, reviewID, AggregateTypeReview, data)
	if err != nil {
		return fmt.Errorf("create review.approved event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewApproved, event); err != nil {
		return fmt.Errorf("publish review.approved event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.approved event",
		slog.String("review_id", reviewID),
		slog.String("product_id", productID),
	)

	return nil
}

// PublishChatMessageSent publishes a chat.message_sent event.
func (p *Producer) PublishChatMessageSent(ctx context.Context, msg *domain.ChatMessage) error {
	data := ChatMessageSentData{
		MessageID:     msg.ID,
		CustomerEmail: msg.CustomerEmail,
		Sender:        msg.Sender,
	}

	event, err := p.newEvent(ctx, TopicChatMessageSent, msg.ID, AggregateTypeChat, data)
	if err != nil {
		return fmt.Errorf("create chat.message_sent event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicChatMessageSent, event); err != nil {
		return fmt.Errorf("publish chat.message_sent event: %w", err)
	}

	p.logger.DebugContext(ctx, "published chat.message_sent event",
		slog.String("message_id", msg.ID),
		slog.String("sender", msg.Sender),
	)

	return nil
}
