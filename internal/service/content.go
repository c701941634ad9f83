package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// CreateAnnouncementInput holds the parameters for creating an announcement.
type CreateAnnouncementInput struct {
	Title    string `json:"title" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,max=1000"`
	IsActive bool   `json:"is_active"`
}

// UpdateAnnouncementInput holds the parameters for updating an announcement.
// Nil fields are left unchanged.
type UpdateAnnouncementInput struct {
	Title    *string `json:"title" validate:"omitempty,max=200"`
	Message  *string `json:"message" validate:"omitempty,max=1000"`
	IsActive *bool   `json:"is_active"`
}

// UpsertSiteContentInput holds the parameters for writing a site content
// block.
type UpsertSiteContentInput struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// ContentService manages announcements and editable site copy.
type ContentService struct {
	announcementRepo repository.AnnouncementRepository
	siteContentRepo  repository.SiteContentRepository
	logger           *slog.Logger
}

// NewContentService creates a new content service.
func NewContentService(
	announcementRepo repository.AnnouncementRepository,
	siteContentRepo repository.SiteContentRepository,
	logger *slog.Logger,
) *ContentService {
	return &ContentService{
		announcementRepo: announcementRepo,
		siteContentRepo:  siteContentRepo,
		logger:           logger,
	}
}

// ListAnnouncements returns announcements, optionally only active ones.
// Customers see only active announcements; the back office sees all.
func (s *ContentService) ListAnnouncements(ctx context.Context, activeOnly bool) ([]domain.Announcement, error) {
	return s.announcementRepo.List(ctx, activeOnly)
}

// CreateAnnouncement adds a new announcement.
func (s *ContentService) CreateAnnouncement(ctx context.Context, input CreateAnnouncementInput) (*domain.Announcement, error) {
	announcement := &domain.Announcement{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Message:   input.Message,
		IsActive:  input.IsActive,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}

	s.logger.InfoContext(ctx, "announcement created",
		slog.String("announcement_id", announcement.ID),
		slog.Bool("is_active", announcement.IsActive),
	)

	return announcement, nil
}

// UpdateAnnouncement applies a partial update to an announcement.
func (s *ContentService) UpdateAnnouncement(ctx context.Context, id string, input UpdateAnnouncementInput) (*domain.Announcement, error) {
	announcements, err := s.announcementRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	var target *domain.Announcement
	for i := range announcements {
		if announcements[i].ID == id {
			target = &announcements[i]
			break
		}
	}
	if target == nil {
		return nil, apperrors.NotFound("announcement", id)
	}

	if input.Title != nil {
		target.Title = *input.Title
	}
	if input.Message != nil {
		target.Message = *input.Message
	}
	if input.IsActive != nil {
		target.IsActive = *input.IsActive
	}

	if err := s.announcementRepo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}

	s.logger.InfoContext(ctx, "announcement updated", slog.String("announcement_id", id))

	return target, nil
}

// DeleteAnnouncement removes an announcement.
func (s *ContentService) DeleteAnnouncement(ctx context.Context, id string) error {
	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "announcement deleted", slog.String("announcement_id", id))

	return nil
}

// GetSiteContent retrieves the content block for a section.
func (s *ContentService) GetSiteContent(ctx context.Context, section string) (*domain.SiteContent, error) {
	if section == "" {
		return nil, apperrors.InvalidInput("section is required")
	}

	return s.siteContentRepo.Get(ctx, section)
}

// ListSiteContent returns all content blocks.
func (s *ContentService) ListSiteContent(ctx context.Context) ([]domain.SiteContent, error) {
	return s.siteContentRepo.List(ctx)
}

// UpsertSiteContent creates or overwrites the content block for a section.
func (s *ContentService) UpsertSiteContent(ctx context.Context, section string, input UpsertSiteContentInput) (*domain.SiteContent, error) {
	if section == "" {
		return nil, apperrors.InvalidInput("section is required")
	}

	block := &domain.SiteContent{
		Section: section,
		Content: input.Content,
	}

	if err := s.siteContentRepo.Upsert(ctx, block); err != nil {
		return nil, fmt.Errorf("upsert site content: %w", err)
	}

	s.logger.InfoContext(ctx, "site content updated", slog.String("section", section))

	return block, nil
}
