package localstore

import (
	"context"
	"sort"
	"strings"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
)

// ChatRepository implements repository.ChatRepository over the local snapshot
// store.
type ChatRepository struct {
	store *Store
}

// NewChatRepository creates a new localstore chat repository.
func NewChatRepository(store *Store) *ChatRepository {
	return &ChatRepository{store: store}
}

// Create appends a new chat message.
func (r *ChatRepository) Create(ctx context.Context, m *domain.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	messages, err := load[domain.ChatMessage](r.store.backend, keyChatMessages)
	if err != nil {
		return err
	}
	messages = append(messages, *m)
	return save(r.store.backend, keyChatMessages, messages)
}

// ListByEmail returns the full thread for a customer, oldest first.
func (r *ChatRepository) ListByEmail(ctx context.Context, email string) ([]domain.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	messages, err := load[domain.ChatMessage](r.store.backend, keyChatMessages)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.ChatMessage, 0)
	for _, m := range messages {
		if strings.EqualFold(m.CustomerEmail, email) {
			matched = append(matched, m)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

// ListThreads summarizes all customer threads for the admin inbox, most
// recently active first.
func (r *ChatRepository) ListThreads(ctx context.Context) ([]domain.ChatThread, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	messages, err := load[domain.ChatMessage](r.store.backend, keyChatMessages)
	if err != nil {
		return nil, err
	}

	threads := make(map[string]*domain.ChatThread)
	for _, m := range messages {
		key := strings.ToLower(m.CustomerEmail)
		t, ok := threads[key]
		if !ok {
			t = &domain.ChatThread{CustomerEmail: m.CustomerEmail}
			threads[key] = t
		}
		if m.CustomerName != "" {
			t.CustomerName = m.CustomerName
		}
		if !m.CreatedAt.Before(t.LastMessageAt) {
			t.LastMessage = m.Message
			t.LastMessageAt = m.CreatedAt
		}
		if m.Sender == domain.ChatSenderCustomer && !m.IsRead {
			t.UnreadCount++
		}
	}

	out := make([]domain.ChatThread, 0, len(threads))
	for _, t := range threads {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}

// MarkRead marks all customer-sent messages in a thread as read.
func (r *ChatRepository) MarkRead(ctx context.Context, email string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	messages, err := load[domain.ChatMessage](r.store.backend, keyChatMessages)
	if err != nil {
		return err
	}
	changed := false
	for i := range messages {
		if strings.EqualFold(messages[i].CustomerEmail, email) &&
			messages[i].Sender == domain.ChatSenderCustomer && !messages[i].IsRead {
			messages[i].IsRead = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return save(r.store.backend, keyChatMessages, messages)
}
