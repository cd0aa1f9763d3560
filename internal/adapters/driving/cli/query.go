package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

var (
	queryVector   string
	queryK        int
	queryAllUsers bool
	queryJSON     bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find documents nearest to a vector",
	Long: `Ranks stored documents by cosine similarity between the query vector
and each document's embedding. Results are scoped to --user unless
--all-users is set.`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryVector, "vector", "", "comma-separated query vector")
	queryCmd.Flags().IntVarP(&queryK, "k", "k", 0, "maximum number of results (default from settings)")
	queryCmd.Flags().BoolVar(&queryAllUsers, "all-users", false, "search documents of every user")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	_ = queryCmd.MarkFlagRequired("vector")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	if userID == "" && !queryAllUsers {
		return fmt.Errorf("%w: --user is empty; use --all-users to search every user", domain.ErrInvalidArgument)
	}

	vector, err := parseVector(queryVector)
	if err != nil {
		return err
	}

	opts := domain.QueryOptions{K: queryK, UserID: userID}
	if !cmd.Flags().Changed("k") {
		opts.K = defaultK
	}
	if queryAllUsers {
		opts.UserID = ""
	}

	results, err := retrievalService.Query(cmd.Context(), vector, opts)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, results)
	}
	return outputQueryTable(cmd, results)
}

func outputQueryJSON(cmd *cobra.Command, results []domain.QueryResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryTable(cmd *cobra.Command, results []domain.QueryResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Println(st.title.Render("Results:"))
	cmd.Println()
	for i := range results {
		doc := &results[i].Doc
		cmd.Printf("  [%d] %s %s\n", i+1, doc.DisplayTitle(), st.score.Render(fmt.Sprintf("(%.4f)", results[i].Score)))
		cmd.Printf("      %s\n", st.muted.Render(doc.ID))
		if doc.URL != nil {
			cmd.Printf("      %s %s\n", st.label.Render("URL:"), *doc.URL)
		}
		if queryAllUsers {
			cmd.Printf("      %s %s\n", st.label.Render("User:"), doc.UserID)
		}
		cmd.Println()
	}
	return nil
}
