package domain

import "time"

// Announcement is a storewide banner message managed by the admin back
// office. Only active announcements are shown to customers.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SiteContent is a named block of editable storefront copy (hero text,
// footer, about section). Keyed by section.
type SiteContent struct {
	Section   string    `json:"section"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
