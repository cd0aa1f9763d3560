package domain

import "time"

// RawItem is a provider-tagged piece of content handed to the core by an
// upstream producer. It is consumed once by the normaliser and never stored.
type RawItem struct {
	// Provider is the origin system.
	Provider ProviderName `json:"provider" yaml:"provider" validate:"required,oneof=manual github google notion"`

	// ExternalID is the provider's identifier for the item. Empty means absent,
	// in which case identity falls back to a content hash.
	ExternalID string `json:"external_id,omitempty" yaml:"external_id,omitempty"`

	// MIME describes the content encoding.
	MIME ContentKind `json:"mime" yaml:"mime" validate:"required,oneof=text/plain text/markdown text/html application/json"`

	// Title is an optional human-readable title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Content is the normalised text content.
	Content string `json:"content" yaml:"content"`

	// URL is an optional source location.
	URL string `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`

	// CreatedAt is the optional creation time reported by the provider.
	CreatedAt *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// HasExternalID reports whether the item carries a provider identifier.
func (r *RawItem) HasExternalID() bool {
	return r.ExternalID != ""
}
