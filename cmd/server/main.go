package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ychoi-kr/wikidocs-mcp/internal/api"
	"github.com/ychoi-kr/wikidocs-mcp/internal/cache"
	"github.com/ychoi-kr/wikidocs-mcp/internal/config"
	"github.com/ychoi-kr/wikidocs-mcp/internal/search"
	"github.com/ychoi-kr/wikidocs-mcp/internal/tools"
	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

const version = "1.0.0"

const instructions = `This server provides tools for reading and editing Wikidocs books and blog content.

Usage notes:
- Use create_page to add a new page to a book; use update_page only to modify a page that already exists.
- If create_page output is interrupted, do not retry by calling update_page with a guessed page ID.
- Never call update_page for a page ID you do not know to exist.
- Page IDs are globally unique across all of Wikidocs, not just within one book.
- Before renumbering sections, call plan_renumbering and review the diffs; execute_renumbering writes the changes back.`

func main() {
	// stdout carries the MCP stdio transport, so logs go to stderr.
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := wikidocs.NewClient(cfg.APIURL, cfg.APIToken)
	defer client.Close()

	store, err := cache.New(cfg.CacheDir, cfg.CacheMaxAge, log)
	if err != nil {
		log.Error("initialize book cache", "error", err)
		os.Exit(1)
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "wikidocs-mcp", Version: version}, &mcp.ServerOptions{
		Instructions: instructions,
	})
	tools.Register(server, tools.Deps{
		Client:           client,
		Store:            store,
		Searcher:         search.New(log),
		Log:              log,
		MaxSearchResults: cfg.SearchMaxResults,
	})

	if cfg.HTTPAddr != "" {
		runHTTP(ctx, cfg, server, log)
		return
	}

	log.Info("starting wikidocs-mcp on stdio", "version", version, "cache_dir", store.Dir())
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func runHTTP(ctx context.Context, cfg config.Config, server *mcp.Server, log *slog.Logger) {
	httpServer := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     api.NewServer(server, cfg.HTTPAPIKey, log),
		ReadTimeout: 30 * time.Second,
		// No write timeout: the streamable transport holds SSE streams open.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting wikidocs-mcp on http", "version", version, "addr", cfg.HTTPAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
