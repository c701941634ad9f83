package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/event"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// SendMessageInput holds the parameters for sending a chat message.
type SendMessageInput struct {
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerName  string `json:"customer_name" validate:"max=100"`
	Message       string `json:"message" validate:"required,max=2000"`
	Sender        string `json:"sender" validate:"required,oneof=customer admin"`
}

// ChatService implements the customer support chat. Threads are keyed by
// customer email; admin replies land in the same thread.
type ChatService struct {
	chatRepo repository.ChatRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewChatService creates a new chat service.
func NewChatService(chatRepo repository.ChatRepository, producer *event.Producer, logger *slog.Logger) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		producer: producer,
		logger:   logger,
	}
}

// SendMessage appends a message to a customer thread. Admin replies arrive
// pre-read; customer messages stay unread until the admin opens the thread.
func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (*domain.ChatMessage, error) {
	if !domain.IsValidChatSender(input.Sender) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid sender %q", input.Sender))
	}

	msg := &domain.ChatMessage{
		ID:            uuid.New().String(),
		CustomerEmail: input.CustomerEmail,
		CustomerName:  input.CustomerName,
		Message:       input.Message,
		Sender:        input.Sender,
		IsRead:        input.Sender == domain.ChatSenderAdmin,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create chat message: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishChatMessageSent(ctx, msg); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish chat.message_sent event",
				slog.String("message_id", msg.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "chat message sent",
		slog.String("message_id", msg.ID),
		slog.String("sender", msg.Sender),
	)

	return msg, nil
}

// GetThread returns the full conversation for a customer, oldest first.
func (s *ChatService) GetThread(ctx context.Context, email string) ([]domain.ChatMessage, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	return s.chatRepo.ListByEmail(ctx, email)
}

// ListThreads returns all customer threads for the admin inbox.
func (s *ChatService) ListThreads(ctx context.Context) ([]domain.ChatThread, error) {
	return s.chatRepo.ListThreads(ctx)
}

// MarkThreadRead marks every customer message in a thread as read.
func (s *ChatService) MarkThreadRead(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.InvalidInput("email is required")
	}

	if err := s.chatRepo.MarkRead(ctx, email); err != nil {
		return fmt.Errorf("mark thread read: %w", err)
	}

	return nil
}
