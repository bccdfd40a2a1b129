package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CTAG07/circlejerk/pkg/fixture"
	"github.com/CTAG07/circlejerk/pkg/pages"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var (
	configPath string
	logLevel   string

	config *Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "circlejerk",
	Short:         "Render the circlejerk mockup from its JSON fixture",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		level := config.Server.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		logger = newLogger(level)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rendered pages over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			config.Server.Addr = addr
		}
		if cmd.Flags().Changed("watch") {
			config.Server.Watch, _ = cmd.Flags().GetBool("watch")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render every page into a directory of static files",
	RunE: func(cmd *cobra.Command, args []string) error {
		if out, _ := cmd.Flags().GetString("out"); out != "" {
			config.Build.OutDir = out
		}
		return runBuild(cmd.Context())
	},
}

var importCmd = &cobra.Command{
	Use:   "import [fixture.json]",
	Short: "Store a JSON fixture in the sqlite database",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := config.Fixture.Path
		if len(args) == 1 {
			src = args[0]
		}
		dbPath := config.Fixture.DatabasePath
		if db, _ := cmd.Flags().GetString("db"); db != "" {
			dbPath = db
		}
		return runImport(cmd.Context(), src, config.Fixture.PostsPath, dbPath)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	// The version needs neither the config file nor a logger.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "circlejerk %s (commit %s, built %s)\n", Version, Commit, BuildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.json", "path to the JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	serveCmd.Flags().String("addr", "", "listen address, overrides server_config.addr")
	serveCmd.Flags().Bool("watch", false, "reload templates and fixture when they change on disk")
	buildCmd.Flags().String("out", "", "output directory, overrides build_config.out_dir")
	importCmd.Flags().String("db", "", "sqlite database path, overrides fixture_config.database_path")

	rootCmd.AddCommand(serveCmd, buildCmd, importCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runServe hosts the site until ctx is cancelled.
func runServe(ctx context.Context) error {
	loader, closeSource, err := openLoader(config.Fixture, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSource(); err != nil {
			logger.Error("Failed to close fixture source", "error", err)
		}
	}()

	pm, err := pages.NewManager(logger, config.Server.TemplateDir)
	if err != nil {
		return fmt.Errorf("failed to create page manager: %w", err)
	}

	// Warm the cache; a failure here is not fatal, pages retry and show the error page.
	if _, err = loader.Load(ctx); err != nil {
		logger.Warn("Initial fixture load failed", "error", err)
	}

	if config.Server.Watch {
		w, err := NewWatcher(logger, loader, pm, config.Fixture)
		if err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		defer func() { _ = w.Close() }()
		go w.Run(ctx)
		logger.Info("Watching for changes", "template_dir", config.Server.TemplateDir)
	}

	httpServer := &http.Server{
		Addr:              config.Server.Addr,
		Handler:           NewServer(config, logger, loader, pm),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting circlejerk server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("circlejerk has shut down.")
	return nil
}

// runBuild writes the static site.
func runBuild(ctx context.Context) error {
	loader, closeSource, err := openLoader(config.Fixture, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeSource() }()

	pm, err := pages.NewManager(logger, config.Server.TemplateDir)
	if err != nil {
		return fmt.Errorf("failed to create page manager: %w", err)
	}

	n, err := NewBuilder(config, logger, loader, pm).Build(ctx)
	if err != nil {
		if isLoadError(err) {
			logger.Error("Fixture could not be loaded, wrote the error page instead", "out_dir", config.Build.OutDir)
		}
		return err
	}
	logger.Info("Static site written", "files", n, "out_dir", config.Build.OutDir)
	return nil
}

// runImport reads a JSON fixture and stores it in the sqlite database.
func runImport(ctx context.Context, src, postsPath, dbPath string) error {
	ds, err := fixture.FileSource{Path: src, PostsPath: postsPath}.Fetch(ctx)
	if err != nil {
		return err
	}

	db, err := openFixtureDB(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err = fixture.ImportDataset(ctx, db, ds); err != nil {
		return fmt.Errorf("failed to import fixture: %w", err)
	}
	logger.Info("Fixture imported",
		slog.String("source", src),
		slog.String("database", dbPath),
		slog.Int("characters", len(ds.Characters)),
		slog.Int("posts", len(ds.Posts)),
	)
	return nil
}
