package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Tsahi-Elkayam/replaylist/cmd/replaylist"
	"github.com/Tsahi-Elkayam/replaylist/pkg/utils"
)

func main() {
	// A .env file is optional; real environment variables win
	_ = godotenv.Load()

	logger := utils.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := replaylist.Execute(ctx, replaylist.NewRootCommand(logger), os.Stderr)
	stop()
	_ = utils.CloseLogFile(logger)

	os.Exit(code)
}
