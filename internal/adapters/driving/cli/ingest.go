package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// Flags for a single item given on the command line.
var (
	ingestProvider   string
	ingestExternalID string
	ingestMIME       string
	ingestTitle      string
	ingestContent    string
	ingestURL        string
	ingestCreatedAt  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest documents",
	Long: `Normalises raw items and stores them as documents owned by --user.

With a file argument, reads a list of items from JSON (.json) or YAML
(.yaml, .yml). Each item has provider, external_id, mime, title, content,
url and created_at fields. Items are ingested independently; failures are
reported per item.

Without a file, ingests the single item described by the flags.

Examples:
  recall ingest notes.yaml
  recall ingest --title "Standup" --content "Ship the importer"
  recall ingest --provider github --external-id acme/widgets#42 --content "..."`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestProvider, "provider", string(domain.ProviderManual), "origin system (manual, github, google, notion)")
	ingestCmd.Flags().StringVar(&ingestExternalID, "external-id", "", "provider identifier for the item")
	ingestCmd.Flags().StringVar(&ingestMIME, "mime", string(domain.MIMEPlainText), "content type")
	ingestCmd.Flags().StringVarP(&ingestTitle, "title", "t", "", "document title")
	ingestCmd.Flags().StringVarP(&ingestContent, "content", "c", "", "document content")
	ingestCmd.Flags().StringVar(&ingestURL, "url", "", "source location")
	ingestCmd.Flags().StringVar(&ingestCreatedAt, "created-at", "", "creation time (RFC 3339)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if len(args) == 0 {
		return ingestFromFlags(cmd)
	}

	items, err := readItems(args[0])
	if err != nil {
		return err
	}
	if len(items) == 0 {
		cmd.Println("No items to ingest.")
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	outcomes := ingestService.IngestBatch(cmd.Context(), items, userID)

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			cmd.Printf("  %s [%d] %s\n", st.failure.Render("✗"), o.Index+1, o.Err)
			continue
		}
		cmd.Printf("  %s %s %s\n", st.success.Render("✓"), o.Doc.ID, st.muted.Render(o.Doc.DisplayTitle()))
	}

	cmd.Printf("\nIngested %d of %d items\n", len(items)-failed, len(items))
	if failed > 0 {
		return fmt.Errorf("%d of %d items failed", failed, len(items))
	}
	return nil
}

func ingestFromFlags(cmd *cobra.Command) error {
	item := domain.RawItem{
		Provider:   domain.ProviderName(ingestProvider),
		ExternalID: ingestExternalID,
		MIME:       domain.ContentKind(ingestMIME),
		Title:      ingestTitle,
		Content:    ingestContent,
		URL:        ingestURL,
	}
	if ingestCreatedAt != "" {
		created, err := time.Parse(time.RFC3339, ingestCreatedAt)
		if err != nil {
			return fmt.Errorf("%w: --created-at: %v", domain.ErrInvalidInput, err)
		}
		item.CreatedAt = &created
	}

	doc, err := ingestService.Ingest(cmd.Context(), item, userID)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s\n", doc.ID)
	return nil
}

// readItems decodes a list of raw items from a JSON or YAML file.
func readItems(path string) ([]domain.RawItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var items []domain.RawItem
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &items)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &items)
	default:
		return nil, fmt.Errorf("%w: file extension %q", domain.ErrUnsupportedType, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, path, err)
	}
	return items, nil
}
