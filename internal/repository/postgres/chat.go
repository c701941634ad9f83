package postgres

import (
	"context"
	"fmt"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/pkg/database"
)

// ChatRepository implements repository.ChatRepository using PostgreSQL.
type ChatRepository struct {
	db database.DBTX
}

// NewChatRepository creates a new PostgreSQL-backed chat repository.
func NewChatRepository(db database.DBTX) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create appends a new chat message.
func (r *ChatRepository) Create(ctx context.Context, m *domain.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, customer_email, customer_name, message, sender, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.CustomerEmail,
		m.CustomerName,
		m.Message,
		m.Sender,
		m.IsRead,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}

	return nil
}

// ListByEmail returns the full thread for a customer, oldest first.
func (r *ChatRepository) ListByEmail(ctx context.Context, email string) ([]domain.ChatMessage, error) {
	query := `
		SELECT id, customer_email, customer_name, message, sender, is_read, created_at
		FROM chat_messages
		WHERE lower(customer_email) = lower($1)
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(
			&m.ID,
			&m.CustomerEmail,
			&m.CustomerName,
			&m.Message,
			&m.Sender,
			&m.IsRead,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan chat message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat message rows: %w", err)
	}

	return messages, nil
}

// ListThreads summarizes all customer threads for the admin inbox, most
// recently active first. The latest message per thread comes from a DISTINCT
// ON subquery; unread counts only customer-sent messages.
func (r *ChatRepository) ListThreads(ctx context.Context) ([]domain.ChatThread, error) {
	query := `
		SELECT last.customer_email,
			   last.customer_name,
			   last.message,
			   last.created_at,
			   coalesce(unread.n, 0) AS unread_count
		FROM (
			SELECT DISTINCT ON (lower(customer_email))
				   customer_email, customer_name, message, created_at
			FROM chat_messages
			ORDER BY lower(customer_email), created_at DESC
		) last
		LEFT JOIN (
			SELECT lower(customer_email) AS email, count(*) AS n
			FROM chat_messages
			WHERE sender = 'customer' AND is_read = false
			GROUP BY lower(customer_email)
		) unread ON unread.email = lower(last.customer_email)
		ORDER BY last.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list chat threads: %w", err)
	}
	defer rows.Close()

	threads := []domain.ChatThread{}
	for rows.Next() {
		var t domain.ChatThread
		if err := rows.Scan(
			&t.CustomerEmail,
			&t.CustomerName,
			&t.LastMessage,
			&t.LastMessageAt,
			&t.UnreadCount,
		); err != nil {
			return nil, fmt.Errorf("scan chat thread row: %w", err)
		}
		threads = append(threads, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat thread rows: %w", err)
	}

	return threads, nil
}

// MarkRead marks all customer-sent messages in a thread as read.
func (r *ChatRepository) MarkRead(ctx context.Context, email string) error {
	query := `
		UPDATE chat_messages
		SET is_read = true
		WHERE lower(customer_email) = lower($1) AND sender = 'customer' AND is_read = false`

	if _, err := r.db.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("mark chat messages read: %w", err)
	}

	return nil
}
