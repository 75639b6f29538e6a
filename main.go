package main

import (
	"context"
	"fmt"
	"os"

	"github.com/zensend/zensend-go/internal/cli"
	"github.com/zensend/zensend-go/internal/config"
	"github.com/zensend/zensend-go/internal/infra/logger"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log := logger.NewLogger(ctx, cfg.LogLevel, cfg.LogFormat == "json")

	commands := cli.NewCommands(cfg, log, os.Stdout, cli.DefaultProviderFactory)
	if err := commands.NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
