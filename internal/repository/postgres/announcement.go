package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	"github.com/davoodepb/temucore-shop-hub/pkg/database"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// AnnouncementRepository implements repository.AnnouncementRepository using
// PostgreSQL.
type AnnouncementRepository struct {
	db database.DBTX
}

// NewAnnouncementRepository creates a new PostgreSQL-backed announcement
// repository.
func NewAnnouncementRepository(db database.DBTX) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create appends a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	query := `
		INSERT INTO announcements (id, title, message, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, a.ID, a.Title, a.Message, a.IsActive, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}

	return nil
}

// List returns announcements, newest first.
func (r *AnnouncementRepository) List(ctx context.Context, activeOnly bool) ([]domain.Announcement, error) {
	query := `
		SELECT id, title, message, is_active, created_at
		FROM announcements`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	announcements := []domain.Announcement{}
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Message, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement row: %w", err)
		}
		announcements = append(announcements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate announcement rows: %w", err)
	}

	return announcements, nil
}

// Update overwrites an existing announcement.
func (r *AnnouncementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $1, message = $2, is_active = $3
		WHERE id = $4`

	ct, err := r.db.Exec(ctx, query, a.Title, a.Message, a.IsActive, a.ID)
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("announcement", a.ID)
	}

	return nil
}

// Delete removes an announcement.
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM announcements WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("announcement", id)
	}

	return nil
}

// SiteContentRepository implements repository.SiteContentRepository using
// PostgreSQL.
type SiteContentRepository struct {
	db database.DBTX
}

// NewSiteContentRepository creates a new PostgreSQL-backed site content
// repository.
func NewSiteContentRepository(db database.DBTX) *SiteContentRepository {
	return &SiteContentRepository{db: db}
}

// Get retrieves the content block for a section.
func (r *SiteContentRepository) Get(ctx context.Context, section string) (*domain.SiteContent, error) {
	query := `
		SELECT section, content, updated_at
		FROM site_content
		WHERE section = $1`

	var c domain.SiteContent
	err := r.db.QueryRow(ctx, query, section).Scan(&c.Section, &c.Content, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("site content", section)
		}
		return nil, fmt.Errorf("scan site content: %w", err)
	}

	return &c, nil
}

// Upsert creates or overwrites the content block for a section.
func (r *SiteContentRepository) Upsert(ctx context.Context, c *domain.SiteContent) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO site_content (section, content, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (section) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query, c.Section, c.Content, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert site content: %w", err)
	}

	return nil
}

// List returns all content blocks.
func (r *SiteContentRepository) List(ctx context.Context) ([]domain.SiteContent, error) {
	query := `
		SELECT section, content, updated_at
		FROM site_content
		ORDER BY section`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list site content: %w", err)
	}
	defer rows.Close()

	blocks := []domain.SiteContent{}
	for rows.Next() {
		var c domain.SiteContent
		if err := rows.Scan(&c.Section, &c.Content, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan site content row: %w", err)
		}
		blocks = append(blocks, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate site content rows: %w", err)
	}

	return blocks, nil
}
