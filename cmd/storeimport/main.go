package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/xw1nchester/dealscan-backend/cmd/storeimport/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	commands.ExecuteContext(ctx)
}
