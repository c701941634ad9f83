package domain

import "time"

// Chat message senders.
const (
	ChatSenderCustomer = "customer"
	ChatSenderAdmin    = "admin"
)

// ChatMessage is a single message in a customer support thread. Threads are
// keyed by customer email.
type ChatMessage struct {
	ID            string    `json:"id"`
	CustomerEmail string    `json:"customer_email"`
	CustomerName  string    `json:"customer_name"`
	Message       string    `json:"message"`
	Sender        string    `json:"sender"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsValidChatSender checks whether the given sender is valid.
func IsValidChatSender(sender string) bool {
	return sender == ChatSenderCustomer || sender == ChatSenderAdmin
}

// ChatThread summarizes a customer conversation for the admin inbox.
type ChatThread struct {
	CustomerEmail string    `json:"customer_email"`
	CustomerName  string    `json:"customer_name"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count"`
}
