package localstore

import (
	"context"
	"sort"

	"github.com/davoodepb/temucore-shop-hub/internal/domain"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// AnnouncementRepository implements repository.AnnouncementRepository over the
// local snapshot store.
type AnnouncementRepository struct {
	store *Store
}

// NewAnnouncementRepository creates a new localstore announcement repository.
func NewAnnouncementRepository(store *Store) *AnnouncementRepository {
	return &AnnouncementRepository{store: store}
}

// Create appends a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	announcements, err := load[domain.Announcement](r.store.backend, keyAnnouncements)
	if err != nil {
		return err
	}
	announcements = append(announcements, *a)
	return save(r.store.backend, keyAnnouncements, announcements)
}

// List returns announcements, newest first.
func (r *AnnouncementRepository) List(ctx context.Context, activeOnly bool) ([]domain.Announcement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	announcements, err := load[domain.Announcement](r.store.backend, keyAnnouncements)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Announcement, 0, len(announcements))
	for _, a := range announcements {
		if activeOnly && !a.IsActive {
			continue
		}
		matched = append(matched, a)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// Update overwrites an existing announcement.
func (r *AnnouncementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	announcements, err := load[domain.Announcement](r.store.backend, keyAnnouncements)
	if err != nil {
		return err
	}
	for i := range announcements {
		if announcements[i].ID == a.ID {
			announcements[i] = *a
			return save(r.store.backend, keyAnnouncements, announcements)
		}
	}
	return apperrors.NotFound("announcement", a.ID)
}

// Delete removes an announcement.
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	announcements, err := load[domain.Announcement](r.store.backend, keyAnnouncements)
	if err != nil {
		return err
	}
	for i := range announcements {
		if announcements[i].ID == id {
			announcements = append(announcements[:i], announcements[i+1:]...)
			return save(r.store.backend, keyAnnouncements, announcements)
		}
	}
	return apperrors.NotFound("announcement", id)
}

// SiteContentRepository implements repository.SiteContentRepository over the
// local snapshot store. Content blocks are keyed by section name.
type SiteContentRepository struct {
	store *Store
}

// NewSiteContentRepository creates a new localstore site content repository.
func NewSiteContentRepository(store *Store) *SiteContentRepository {
	return &SiteContentRepository{store: store}
}

// Get retrieves the content block for a section.
func (r *SiteContentRepository) Get(ctx context.Context, section string) (*domain.SiteContent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	blocks, err := loadMap[domain.SiteContent](r.store.backend, keySiteContent)
	if err != nil {
		return nil, err
	}
	block, ok := blocks[section]
	if !ok {
		return nil, apperrors.NotFound("site content", section)
	}
	return &block, nil
}

// Upsert creates or overwrites the content block for a section.
func (r *SiteContentRepository) Upsert(ctx context.Context, c *domain.SiteContent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	blocks, err := loadMap[domain.SiteContent](r.store.backend, keySiteContent)
	if err != nil {
		return err
	}
	blocks[c.Section] = *c
	return saveMap(r.store.backend, keySiteContent, blocks)
}

// List returns all content blocks, sorted by section for stable output.
func (r *SiteContentRepository) List(ctx context.Context) ([]domain.SiteContent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	blocks, err := loadMap[domain.SiteContent](r.store.backend, keySiteContent)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SiteContent, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, block)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Section < out[j].Section
	})
	return out, nil
}
