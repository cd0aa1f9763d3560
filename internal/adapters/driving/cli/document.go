package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/normaliser"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage stored documents",
	Long:  `List, view, or remove stored documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents owned by --user",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a document",
	Long: `Removes a document. Its embedding is left in place and is dropped by
the next compaction.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentRemove,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.ListByUser(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents found for user: %s\n", userID)
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Println(st.title.Render(fmt.Sprintf("Documents for user %s:", userID)))
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title: %s\n", docs[i].DisplayTitle())
		if docs[i].URL != nil {
			cmd.Printf("    URL: %s\n", *docs[i].URL)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := checkIdentity(args[0]); err != nil {
		return err
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Println(st.title.Render(doc.DisplayTitle()))
	cmd.Printf("  %s %s\n", st.label.Render("ID:"), doc.ID)
	cmd.Printf("  %s %s\n", st.label.Render("User:"), doc.UserID)
	cmd.Printf("  %s %s\n", st.label.Render("Provider:"), doc.Provider)
	if doc.URL != nil {
		cmd.Printf("  %s %s\n", st.label.Render("URL:"), *doc.URL)
	}
	cmd.Printf("  %s %s\n", st.label.Render("Created:"), doc.CreatedAt.UTC().Format(time.RFC3339))
	cmd.Println()
	cmd.Println(doc.Content)
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := checkIdentity(args[0]); err != nil {
		return err
	}

	if err := documentService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Removed %s\n", args[0])
	return nil
}

// checkIdentity rejects IDs that the normaliser could not have produced.
func checkIdentity(id string) error {
	if !normaliser.ValidIdentity(id) {
		return fmt.Errorf("%w: malformed document ID %q", domain.ErrInvalidArgument, id)
	}
	return nil
}
