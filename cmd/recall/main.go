// Command recall stores documents with their embeddings and answers
// cosine-similarity queries over them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/sercha-recall/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, version)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error (%s): %v\n", domain.Describe(err), err)
		os.Exit(1)
	}
}
