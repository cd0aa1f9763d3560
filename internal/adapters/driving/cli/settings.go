package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure storage, query, ingestion, and scheduler settings.

Settings live in config.toml inside the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend [memory|sqlite|badger]",
	Short: "Set the storage backend",
	Long: `Select where documents and embeddings are stored.

Available backends:
  memory - in process, persisted as a compressed snapshot
  sqlite - single-file SQLite database
  badger - Badger key-value store`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsBackend,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file",
	Args:  cobra.NoArgs,
	RunE:  runSettingsValidate,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	cmd.Printf("  Data dir: %s\n", orDefault(settings.Storage.DataDir))
	cmd.Println()

	cmd.Println("[Query]")
	cmd.Printf("  Default k: %d\n", settings.Query.DefaultK)
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Concurrency: %d\n", settings.Ingest.Concurrency)
	cmd.Println()

	cmd.Println("[MCP]")
	cmd.Printf("  HTTP address: %s\n", orValue(settings.MCP.HTTPAddr, "(stdio)"))
	cmd.Println()

	cmd.Println("[Scheduler]")
	if settings.Scheduler.Enabled {
		cmd.Printf("  Enabled: yes\n")
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Printf("  Compaction: %s\n", orValue(settings.Scheduler.Compaction, "(disabled)"))
	cmd.Printf("  Snapshot: %s\n", orValue(settings.Scheduler.Snapshot, "(disabled)"))
	return nil
}

func runSettingsBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.StorageBackend(args[0])
	if err := settingsService.SetBackend(backend); err != nil {
		return fmt.Errorf("failed to set backend: %w", err)
	}

	cmd.Printf("Storage backend set to %s\n", backend)
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Validate(); err != nil {
		return err
	}

	cmd.Println("Settings are valid")
	return nil
}

func orDefault(s string) string {
	return orValue(s, "(default)")
}

func orValue(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
