package normaliser

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// namespace scopes document identities so they never collide with UUIDs
// minted for other purposes.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://sercha.dev/recall/documents"))

// Normaliser converts raw items into stored documents.
type Normaliser struct {
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Normaliser.
type Option func(*Normaliser)

// WithClock sets the clock used when an item carries no creation time.
func WithClock(now func() time.Time) Option {
	return func(n *Normaliser) {
		n.now = now
	}
}

// New creates a new normaliser.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalise validates item and derives its StoredDoc for owner.
// Content is trimmed but otherwise passed through; no MIME parsing happens here.
func (n *Normaliser) Normalise(_ context.Context, item domain.RawItem, owner string) (*domain.StoredDoc, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidArgument)
	}

	if err := n.validate.Struct(item); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}

	content := strings.TrimSpace(item.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", domain.ErrInvalidInput)
	}

	createdAt := n.now().UTC()
	if item.CreatedAt != nil && !item.CreatedAt.IsZero() {
		createdAt = item.CreatedAt.UTC()
	}

	return &domain.StoredDoc{
		ID:        Identity(item.Provider, item.ExternalID, content),
		UserID:    owner,
		Title:     optional(strings.TrimSpace(item.Title)),
		Content:   content,
		URL:       optional(strings.TrimSpace(item.URL)),
		Provider:  item.Provider,
		CreatedAt: createdAt,
	}, nil
}

// Identity derives the stable document identity for an item.
//
// Items with an external ID are keyed by (provider, externalID), so re-ingesting
// the same resource upserts. Items without one are keyed by (provider, content
// hash). content should already be trimmed. The result is a name-based UUID.
func Identity(provider domain.ProviderName, externalID, content string) string {
	var name string
	if externalID != "" {
		name = string(provider) + ":ext:" + externalID
	} else {
		name = string(provider) + ":sha256:" + ContentHash(content)
	}
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

// ContentHash returns the hex SHA-256 of content.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ValidIdentity reports whether id has the shape produced by Identity.
func ValidIdentity(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.Version() == 5
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
