package domain

import "time"

// StoredDoc is the canonical persisted document produced by the normaliser.
type StoredDoc struct {
	// ID is the identity derived from provider and external ID or content hash.
	ID string `json:"id"`

	// UserID is the owning user. A document belongs to exactly one user.
	UserID string `json:"user_id"`

	// Title is nil when the provider supplied none.
	Title *string `json:"title"`

	// Content is the trimmed text content.
	Content string `json:"content"`

	// URL is nil when the provider supplied none.
	URL *string `json:"url"`

	// Provider is the origin system.
	Provider ProviderName `json:"provider"`

	// CreatedAt is when the document was created at the provider, or first ingested.
	CreatedAt time.Time `json:"created_at"`
}

// DisplayTitle returns the title, or the ID when the document has none.
func (d *StoredDoc) DisplayTitle() string {
	if d.Title != nil && *d.Title != "" {
		return *d.Title
	}
	return d.ID
}

// OwnedBy reports whether the document belongs to userID.
func (d *StoredDoc) OwnedBy(userID string) bool {
	return d.UserID == userID
}

// Clone returns a copy of d that shares no pointers with it.
func (d StoredDoc) Clone() StoredDoc {
	if d.Title != nil {
		title := *d.Title
		d.Title = &title
	}
	if d.URL != nil {
		url := *d.URL
		d.URL = &url
	}
	return d
}
