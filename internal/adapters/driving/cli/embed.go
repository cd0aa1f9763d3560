package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

var embedVector string

var embedCmd = &cobra.Command{
	Use:   "embed [doc-id]",
	Short: "Attach an embedding to a document",
	Long: `Stores the embedding vector for an existing document, replacing any
previous vector. The first vector stored fixes the dimension every later
vector must match.

Example:
  recall embed 6f1c... --vector 0.12,-0.4,0.88`,
	Args: cobra.ExactArgs(1),
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().StringVar(&embedVector, "vector", "", "comma-separated vector components")
	_ = embedCmd.MarkFlagRequired("vector")
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if err := checkIdentity(args[0]); err != nil {
		return err
	}

	vector, err := parseVector(embedVector)
	if err != nil {
		return err
	}

	if err := ingestService.AttachEmbedding(cmd.Context(), args[0], vector); err != nil {
		return fmt.Errorf("embed failed: %w", err)
	}

	cmd.Printf("Attached %d-dimensional embedding to %s\n", len(vector), args[0])
	return nil
}

// parseVector parses comma-separated float components.
func parseVector(s string) ([]float32, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	if s == "" {
		return nil, fmt.Errorf("%w: empty vector", domain.ErrInvalidArgument)
	}

	parts := strings.Split(s, ",")
	vector := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("%w: vector component %d: %q", domain.ErrInvalidArgument, i, p)
		}
		vector[i] = float32(f)
	}
	return vector, nil
}
