package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/overseerr-mcp/aggregator"
	"github.com/s0up4200/overseerr-mcp/config"
	"github.com/s0up4200/overseerr-mcp/mcp"
	"github.com/s0up4200/overseerr-mcp/overseerr"
	"github.com/s0up4200/overseerr-mcp/plainval"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "overseerr-mcp",
	Short: "An MCP server exposing Overseerr request data as callable tools",
	Long: `overseerr-mcp serves the Model Context Protocol over HTTP, exposing
your Overseerr instance to tool-calling agents: server status, movie
requests and TV requests with optional status and date filters.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion records the build metadata stamped in by the linker.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(testCmd)
}

// initializeApp loads the configuration and sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)
	return nil
}

// newOverseerrClient builds a fresh client from the loaded config.
// The aggregator acquires one per tool invocation and closes it when
// the invocation ends.
func newOverseerrClient() (overseerr.API, error) {
	return overseerr.NewClient(cfg.Overseerr.URL, cfg.Overseerr.APIKey, logger)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// serveCmd runs the MCP HTTP server until interrupted
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long:  `Serve the MCP endpoint over HTTP until SIGINT or SIGTERM.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ops := aggregator.NewOperations(newOverseerrClient, logger)
	server := mcp.NewServer(ops, appVersion, cfg.Server.Token, logger)

	mux := http.NewServeMux()
	mux.Handle(cfg.Server.Path, server)

	httpServer := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("listen", cfg.Server.Listen).
			Str("path", cfg.Server.Path).
			Str("version", appVersion).
			Str("build_time", appBuildTime).
			Msg("Starting MCP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// testCmd checks connectivity to the configured Overseerr instance
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to Overseerr",
	Long:  `Verify the configured URL and API key by calling the Overseerr API.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	client, err := newOverseerrClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	if err := client.TestConnection(ctx); err != nil {
		return err
	}

	status, err := client.GetStatus(ctx)
	if err != nil {
		return err
	}

	version := "unknown"
	if m, ok := status.(*plainval.Map); ok {
		if v, ok := m.Get("version"); ok {
			version = fmt.Sprint(v)
		}
	}

	fmt.Printf("Successfully connected to Overseerr %s at %s\n", version, cfg.Overseerr.URL)
	return nil
}
