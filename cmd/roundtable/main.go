package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	roundtablecmd "github.com/louisbranch/roundtable/internal/cmd/roundtable"
	"github.com/louisbranch/roundtable/internal/platform/config"
)

func main() {
	cfg, args, err := roundtablecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := roundtablecmd.Run(ctx, cfg, args, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
