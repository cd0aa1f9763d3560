// Package cli provides the cobra command tree for the recall binary.
//
// Commands talk to the core only through driving ports held in package
// variables. They are wired from the configuration directory before any
// command runs, unless a caller (usually a test) has installed them already.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-recall/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-recall/internal/logger"
)

// version is set at build time via Execute.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	userID    string
)

// Services used by commands.
var (
	ingestService      driving.IngestService
	retrievalService   driving.RetrievalService
	documentService    driving.DocumentService
	maintenanceService driving.MaintenanceService
	settingsService    driving.SettingsService
	scheduler          driving.Scheduler
	defaultK           = fallbackK
	defaultHTTPAddr    string
)

// app holds the services wired for the current invocation, if any.
var app *App

// fallbackK is the query result count before settings are loaded.
const fallbackK = 10

// skipServices marks commands that run without wiring the stores.
const skipServices = "skip-services"

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Document and embedding store with cosine retrieval",
	Long: `recall stores normalised documents and their embedding vectors,
and answers nearest-neighbour queries over them.

Documents come from upstream producers (manual input, GitHub, Google
Drive, Notion), are owned by a single user, and can be queried across
all users or scoped to one.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setupServices,
	PersistentPostRunE: teardownServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sercha-recall)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", defaultUser(), "user that owns ingested documents and scopes queries")
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	err := rootCmd.ExecuteContext(ctx)
	// Post-run hooks are skipped when a command fails.
	return errors.Join(err, closeApp(context.WithoutCancel(ctx)))
}

func defaultUser() string {
	if u := os.Getenv("RECALL_USER"); u != "" {
		return u
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[skipServices] == "true" || servicesConfigured() {
		return nil
	}

	a, err := NewApp(configDir)
	if err != nil {
		return err
	}
	a.install()
	app = a
	return nil
}

func teardownServices(cmd *cobra.Command, _ []string) error {
	return closeApp(cmd.Context())
}

func closeApp(ctx context.Context) error {
	if app == nil {
		return nil
	}
	a := app
	app = nil
	return a.Close(ctx)
}

func servicesConfigured() bool {
	return ingestService != nil && retrievalService != nil && documentService != nil
}
