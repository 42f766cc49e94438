package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jacoboon/GameWatcher/internal/fault"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			if category := fault.Category(err); category != "unknown" {
				fmt.Fprintf(os.Stderr, "audiofix [%s]: %v\n", category, err)
			} else {
				fmt.Fprintf(os.Stderr, "audiofix: %v\n", err)
			}
		}
		stop()
		os.Exit(1)
	}
}
