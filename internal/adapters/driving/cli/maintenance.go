package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Drop embeddings of removed documents",
	Args:  cobra.NoArgs,
	RunE:  runCompact,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write the in-memory store to disk",
	Long: `Writes a compressed snapshot of the memory backend to the data
directory. Persistent backends write through and need no snapshot.`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(compactCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runCompact(cmd *cobra.Command, _ []string) error {
	if maintenanceService == nil {
		return errors.New("maintenance service not configured")
	}

	removed, err := maintenanceService.Compact(cmd.Context())
	if err != nil {
		return fmt.Errorf("compaction failed: %w", err)
	}

	cmd.Printf("Removed %d dangling embeddings\n", removed)
	return nil
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	if maintenanceService == nil {
		return errors.New("maintenance service not configured")
	}

	if err := maintenanceService.Snapshot(cmd.Context()); err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}

	cmd.Println("Snapshot written")
	return nil
}
