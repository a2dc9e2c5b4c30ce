package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tubepost/internal/acquire"
	"tubepost/internal/config"
	"tubepost/internal/images"
	"tubepost/internal/llm"
	"tubepost/internal/logger"
	"tubepost/internal/pipeline"
	"tubepost/internal/server"
	"tubepost/internal/store"

	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command for starting the HTTP server
func NewServeCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the tubepost JSON API server.

The server provides:
  • POST /api/generate-blog to turn a YouTube URL into a blog post
  • GET /api/blogs and /api/blogs/{id} to read persisted blogs
  • Health check and status endpoints

The Gemini API key (GEMINI_API_KEY) is only required for generation;
read endpoints work without it.

Examples:
  # Start server on default port 8080
  tubepost serve

  # Start on custom port
  tubepost serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")

	return cmd
}

// lazyGenerator defers LLM client construction to the first generation
// request, so a missing credential fails that request instead of startup.
type lazyGenerator struct{}

func (lazyGenerator) GenerateText(ctx context.Context, instruction, content string) (string, error) {
	client, err := llm.NewClient(ctx, "")
	if err != nil {
		return "", err
	}
	return client.GenerateText(ctx, instruction, content)
}

func runServe(ctx context.Context, port int, host string) error {
	logger.Info("Starting HTTP server")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override server config from flags if provided
	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	st, err := store.NewStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	if err := st.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	gen := pipeline.New(acquire.New(), lazyGenerator{}, images.NewResolver(), st, config.GeminiTimeout())

	srv := server.New(gen, st, serverCfg)

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info(fmt.Sprintf("Server listening on http://%s:%d", serverCfg.Host, serverCfg.Port))
		logger.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("Server shutdown initiated", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed, forcing close", err)
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info("Server stopped successfully")
	}

	return nil
}
