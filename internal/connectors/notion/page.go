// Package notion maps Notion pages to raw items.
package notion

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// PageToRawItem converts a Notion page and its rendered markdown content into
// a RawItem. Archived pages return domain.ErrUnsupportedType.
func PageToRawItem(page *notionapi.Page, content string) (domain.RawItem, error) {
	if page == nil {
		return domain.RawItem{}, fmt.Errorf("%w: nil page", domain.ErrInvalidInput)
	}
	id := page.ID.String()
	if id == "" {
		return domain.RawItem{}, fmt.Errorf("%w: page has no id", domain.ErrInvalidInput)
	}
	if page.Archived {
		return domain.RawItem{}, fmt.Errorf("%w: page %s is archived", domain.ErrUnsupportedType, id)
	}

	item := domain.RawItem{
		Provider:   domain.ProviderNotion,
		ExternalID: id,
		MIME:       domain.MIMEMarkdown,
		Title:      PageTitle(page),
		Content:    content,
		URL:        page.URL,
	}
	if !page.CreatedTime.IsZero() {
		created := page.CreatedTime.UTC()
		item.CreatedAt = &created
	}
	return item, nil
}

// PageTitle returns the plain text of the page's title property, or "" when
// the page has none.
func PageTitle(page *notionapi.Page) string {
	// Property iteration order is random; pick deterministically.
	names := make([]string, 0, len(page.Properties))
	for name := range page.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if title, ok := page.Properties[name].(*notionapi.TitleProperty); ok {
			return PlainText(title.Title)
		}
	}
	return ""
}

// PlainText concatenates the plain text of rich text segments.
func PlainText(rich []notionapi.RichText) string {
	var b strings.Builder
	for _, rt := range rich {
		b.WriteString(rt.PlainText)
	}
	return strings.TrimSpace(b.String())
}
