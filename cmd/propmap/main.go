// Package main provides the propmap command line.
//
// propmap works on YAML mapping profiles:
//   - check: validates a profile against the Go packages it refers to
//   - fmt: rewrites a profile in canonical form
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
