/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seckatie/feedmarks/internal/config"
	"github.com/seckatie/feedmarks/internal/core"
	"github.com/seckatie/feedmarks/internal/core/db"
	"github.com/seckatie/feedmarks/internal/core/launcher"
	"github.com/seckatie/feedmarks/internal/core/service"
	"github.com/seckatie/feedmarks/internal/core/web"
	"github.com/seckatie/feedmarks/internal/logging"
)

// appConfig is populated by the root PersistentPreRunE before any command runs.
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   core.AppName,
	Short: "Keep bookmarks and RSS feed subscriptions in a local web app",
	Long: `feedmarks stores bookmarks and RSS feed subscriptions in a local SQLite
file and serves a small web UI for managing them.

Running feedmarks with no subcommand starts the web server on the loopback
interface and opens the UI in your browser after a short delay. Use
--no-browser to skip that, or --app-window to open a dedicated Chrome window
that stops the server when it is closed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		appConfig = cfg
		logging.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		noBrowser, err := cmd.Flags().GetBool("no-browser")
		if err != nil {
			return fmt.Errorf("failed to read --no-browser: %w", err)
		}
		appWindow, err := cmd.Flags().GetBool("app-window")
		if err != nil {
			return fmt.Errorf("failed to read --app-window: %w", err)
		}

		var opener launcher.Opener
		switch {
		case noBrowser:
		case appWindow:
			opener = launcher.ChromeWindow{ChromePath: appConfig.ChromePath}
		default:
			opener = launcher.SystemBrowser{}
		}
		return runServer(cmd.Context(), appConfig, opener, appWindow && !noBrowser)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("db", "d", core.DefaultDBPath, "Path to the SQLite database file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", core.LogFormatText, "Log format (text, json)")

	addServerFlags(rootCmd)
	rootCmd.Flags().Bool("no-browser", false, "Do not open a browser after starting the server")
	rootCmd.Flags().Bool("app-window", false, "Open a dedicated Chrome window and stop when it is closed")
	rootCmd.Flags().String("chrome-path", "", "Path to Chrome/Chromium executable used by --app-window")
}

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("port", "p", core.DefaultPort, "Port to listen on (0 picks a free port)")
	cmd.Flags().String("host", core.DefaultHost, "Host to listen on")
	cmd.Flags().Duration("open-delay", core.DefaultOpenDelay, "How long to wait after starting before opening the browser")
}

// loadConfig reads the environment and then applies any flag the user set
// explicitly. Flags not defined on cmd are ignored.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("db") {
		if cfg.DBPath, err = cmd.Flags().GetString("db"); err != nil {
			return nil, fmt.Errorf("failed to read --db: %w", err)
		}
	}
	if changed("host") {
		if cfg.Host, err = cmd.Flags().GetString("host"); err != nil {
			return nil, fmt.Errorf("failed to read --host: %w", err)
		}
	}
	if changed("port") {
		if cfg.Port, err = cmd.Flags().GetInt("port"); err != nil {
			return nil, fmt.Errorf("failed to read --port: %w", err)
		}
	}
	if changed("open-delay") {
		if cfg.OpenDelay, err = cmd.Flags().GetDuration("open-delay"); err != nil {
			return nil, fmt.Errorf("failed to read --open-delay: %w", err)
		}
	}
	if changed("chrome-path") {
		if cfg.ChromePath, err = cmd.Flags().GetString("chrome-path"); err != nil {
			return nil, fmt.Errorf("failed to read --chrome-path: %w", err)
		}
	}
	if changed("log-level") {
		if cfg.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
			return nil, fmt.Errorf("failed to read --log-level: %w", err)
		}
	}
	if changed("log-format") {
		if cfg.LogFormat, err = cmd.Flags().GetString("log-format"); err != nil {
			return nil, fmt.Errorf("failed to read --log-format: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func initDB(path string) (*db.DB, error) {
	database, err := db.NewSQLiteDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Debug("database migrated successfully", "path", path)
	return database, nil
}

// registerEventLogging logs every create and delete the store performs.
func registerEventLogging(database *db.DB) {
	database.RegisterEventListener(db.OnBookmarkCreatedEvent, func(event db.Event) error {
		ev := event.(db.BookmarkCreatedEvent)
		slog.Info("bookmark created", "id", ev.Bookmark.ID, "url", ev.Bookmark.URL)
		return nil
	})
	database.RegisterEventListener(db.OnBookmarkDeletedEvent, func(event db.Event) error {
		ev := event.(db.BookmarkDeletedEvent)
		slog.Info("bookmark deleted", "id", ev.Bookmark.ID, "url", ev.Bookmark.URL)
		return nil
	})
	database.RegisterEventListener(db.OnFeedCreatedEvent, func(event db.Event) error {
		ev := event.(db.FeedCreatedEvent)
		slog.Info("feed created", "id", ev.Feed.ID, "url", ev.Feed.URL)
		return nil
	})
	database.RegisterEventListener(db.OnFeedDeletedEvent, func(event db.Event) error {
		ev := event.(db.FeedDeletedEvent)
		slog.Info("feed deleted", "id", ev.Feed.ID, "url", ev.Feed.URL)
		return nil
	})
}

// serverURL is the configured URL, or the bound address when the OS picked
// the port.
func serverURL(cfg *config.Config, addr net.Addr) string {
	if cfg.Port != 0 {
		return cfg.URL()
	}
	return "http://" + addr.String() + "/"
}

// runServer binds the listener, then hands off to the launcher until ctx is
// cancelled or a signal arrives. A nil opener serves without a browser.
func runServer(ctx context.Context, cfg *config.Config, opener launcher.Opener, stopOnClose bool) error {
	database, err := initDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()
	registerEventLogging(database)

	srv, err := web.NewServer(service.NewBookmarkService(database), service.NewFeedService(database))
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr(), err)
	}
	url := serverURL(cfg, ln.Addr())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("feedmarks is running", "url", url, "db", cfg.DBPath)
	return launcher.Launch(ctx, srv, ln, opener, launcher.Options{
		URL:         url,
		Delay:       cfg.OpenDelay,
		StopOnClose: stopOnClose,
	})
}
