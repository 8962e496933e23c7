// Package mcp parses MCP command flags and serves the roundtable tools
// over stdio or HTTP.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/louisbranch/roundtable/internal/mcp/service"
	"github.com/louisbranch/roundtable/internal/platform/config"
	"github.com/louisbranch/roundtable/internal/platform/otel"
	"github.com/louisbranch/roundtable/internal/roundtable/app"
	"github.com/louisbranch/roundtable/internal/roundtable/consensus"
	"github.com/louisbranch/roundtable/internal/roundtable/generator"
	"github.com/louisbranch/roundtable/internal/roundtable/storage/sqlite"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath       string `env:"ROUNDTABLE_DB_PATH"        envDefault:"roundtable.db"`
	OpenAIAPIKey string `env:"ROUNDTABLE_OPENAI_API_KEY"`
	OpenAIModel  string `env:"ROUNDTABLE_OPENAI_MODEL"   envDefault:"gpt-4o-mini"`
	HTTPAddr     string `env:"ROUNDTABLE_MCP_HTTP_ADDR"  envDefault:"localhost:8081"`
	Transport    string `env:"ROUNDTABLE_MCP_TRANSPORT"  envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the sqlite database")
	fs.StringVar(&cfg.OpenAIModel, "model", cfg.OpenAIModel, "generation model")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server with its storage and generation stack.
func Run(ctx context.Context, cfg Config) error {
	if cfg.OpenAIAPIKey == "" {
		return fmt.Errorf("ROUNDTABLE_OPENAI_API_KEY is required")
	}

	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	invoker := generator.NewRetrying(generator.NewOpenAIInvoker(generator.OpenAIConfig{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.OpenAIModel,
	}), generator.DefaultRetryPolicy())

	svc := app.NewService(app.Config{
		Roles:    store,
		Meetings: store,
		Usage:    store,
		Invoker:  invoker,
		Detector: consensus.NewMarkerJudge(invoker, log.Default()),
		Logger:   log.Default(),
	})

	return service.Run(ctx, svc, log.Default(), service.Config{
		Transport: service.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	})
}
