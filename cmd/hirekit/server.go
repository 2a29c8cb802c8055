package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/api"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/config"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/engine"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/intent"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hirekit HTTP server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _ := cmd.Flags().GetString("host")
		return runServer(host)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show hirekit system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus(cmd.Context())
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the assistant as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCP()
	},
}

func init() {
	serveCmd.Flags().String("host", "127.0.0.1", "interface to listen on")
}

func runServer(host string) error {
	fmt.Fprintf(os.Stderr, "hirekit version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("closing resources", "error", err)
		}
	}()
	a.prepareEngine(ctx, os.Stderr)

	if cfg.Server.APIToken == "" {
		slog.Warn("server.api_token not set; interaction routes are unauthenticated")
	}

	handler := api.NewHandler(api.Deps{
		Assistant:       a.assistant,
		Store:           a.store,
		Token:           cfg.Server.APIToken,
		MaxProfileBytes: cfg.Server.MaxProfileBytes,
	})

	addr := net.JoinHostPort(host, fmt.Sprintf("%d", cfg.Server.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("hirekit listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runMCP() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	a.prepareEngine(ctx, os.Stderr)

	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Assistant:       a.assistant,
		Store:           a.store,
		MaxProfileBytes: cfg.Server.MaxProfileBytes,
	}, version)

	slog.Info("MCP server started (stdio transport)")
	if err := server.NewStdioServer(mcpSrv).Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP stdio server: %w", err)
	}
	return nil
}

func showStatus(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	client := &http.Client{Timeout: 2 * time.Second}
	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)

	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	detect := engine.DetectConfig{
		Backend:          cfg.LLM.Backend,
		OllamaBaseURL:    cfg.Ollama.BaseURL,
		OpenRouterAPIKey: cfg.LLM.OpenRouterAPIKey,
		OpenRouterURL:    cfg.LLM.OpenRouterURL,
	}
	backend := detect.Resolve()
	if eng, err := engine.Detect(detect); err != nil {
		printStatus("LLM backend", "%v", err)
	} else {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		running := eng.IsRunning(checkCtx)
		cancel()
		state := "reachable"
		if !running {
			state = "unreachable"
		}
		printStatus("LLM backend", "%s (%s)", backend, state)
	}
	printStatus("Chat model", "%s", cfg.ChatModel(backend))
	printStatus("Reasoning model", "%s", cfg.ReasoningModelFor(backend))

	if cfg.Provider.AdzunaAppID != "" && cfg.Provider.AdzunaAppKey != "" {
		printStatus("Job provider", "adzuna")
	} else {
		printStatus("Job provider", "no credentials (synthetic=%t)", cfg.Search.AllowSynthetic)
	}
	if cfg.Cache.RedisURL != "" {
		printStatus("Search cache", "redis (ttl %s)", cfg.Search.CacheTTL)
	} else {
		printStatus("Search cache", "disabled")
	}

	store, err := storage.Open(cfg.Storage.DataDir)
	if err == nil {
		if counts, err := store.IntentCounts(); err == nil {
			total := 0
			for _, n := range counts {
				total += n
			}
			printStatus("Interactions", "%d (job_search %d, cover_letter %d, open_chat %d)",
				total, counts[string(intent.JobSearch)], counts[string(intent.CoverLetter)], counts[string(intent.OpenChat)])
		}
		store.Close()
	}

	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}
