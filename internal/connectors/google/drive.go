// Package google maps Google Drive files to raw items.
package google

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// Google Workspace MIME types.
const (
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	MimeTypeFolder       = "application/vnd.google-apps.folder"
)

// FileToRawItem converts a Drive file and its exported or downloaded text
// into a RawItem. Workspace documents are expected to be exported as plain
// text by the caller. Folders, spreadsheets, binary files and trashed files
// return domain.ErrUnsupportedType.
func FileToRawItem(file *drive.File, content string) (domain.RawItem, error) {
	if file == nil {
		return domain.RawItem{}, fmt.Errorf("%w: nil file", domain.ErrInvalidInput)
	}
	if file.Id == "" {
		return domain.RawItem{}, fmt.Errorf("%w: file has no id", domain.ErrInvalidInput)
	}
	if file.Trashed {
		return domain.RawItem{}, fmt.Errorf("%w: file %s is trashed", domain.ErrUnsupportedType, file.Id)
	}

	kind, ok := contentKind(file.MimeType)
	if !ok {
		return domain.RawItem{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, file.MimeType)
	}

	item := domain.RawItem{
		Provider:   domain.ProviderGoogle,
		ExternalID: file.Id,
		MIME:       kind,
		Title:      file.Name,
		Content:    content,
		URL:        file.WebViewLink,
	}
	if file.CreatedTime != "" {
		created, err := time.Parse(time.RFC3339, file.CreatedTime)
		if err != nil {
			return domain.RawItem{}, fmt.Errorf("%w: created time %q: %v", domain.ErrInvalidInput, file.CreatedTime, err)
		}
		created = created.UTC()
		item.CreatedAt = &created
	}
	return item, nil
}

// contentKind maps a Drive MIME type to the content kind of its text form.
func contentKind(mimeType string) (domain.ContentKind, bool) {
	switch mimeType {
	case MimeTypeGoogleDoc, MimeTypeGoogleSlides:
		return domain.MIMEPlainText, true
	case "text/markdown", "text/x-markdown":
		return domain.MIMEMarkdown, true
	case "text/html":
		return domain.MIMEHTML, true
	case "application/json":
		return domain.MIMEJSON, true
	}
	if strings.HasPrefix(mimeType, "text/") {
		return domain.MIMEPlainText, true
	}
	return "", false
}
