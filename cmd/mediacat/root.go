package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dastanaron/mediacat/internal/config"
	"github.com/dastanaron/mediacat/internal/log"
	"github.com/dastanaron/mediacat/internal/models"
	"github.com/dastanaron/mediacat/internal/repository"
	"github.com/dastanaron/mediacat/internal/service"
	"github.com/dastanaron/mediacat/internal/thumbnail"
	"github.com/dastanaron/mediacat/internal/ui"

	"github.com/spf13/cobra"
)

// session is shared by all commands. It is filled lazily so that --help
// never touches the store.
type session struct {
	configPath string
	storePath  string
	backend    string

	cfg     *config.Config
	repo    repository.Repository
	logFile *os.File
}

func newRootCmd() *cobra.Command {
	rt := &session{}
	var (
		add    bool
		editID string
	)

	cmd := &cobra.Command{
		Use:          "mediacat",
		Short:        "Personal media catalog in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse the catalog
  mediacat

  # Open the form for a new item, or to edit one
  mediacat --add
  mediacat --edit 0190a8f2-...

  # Scriptable commands
  mediacat list --type Movie --min-rating 4
  mediacat export gallery.html
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, thumbs, err := rt.open(true)
			if err != nil {
				return err
			}
			app := ui.NewApp(catalog, thumbs)
			if add || editID != "" {
				app.StartInForm(editID)
			}
			return app.Run()
		},
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return rt.close()
	}

	cmd.PersistentFlags().StringVar(&rt.configPath, "config", "", "Path to config file (default: ~/.mediacat/config.yaml)")
	cmd.PersistentFlags().StringVar(&rt.storePath, "db", "", "Path to the store (sqlite file, or directory for the file backend)")
	cmd.PersistentFlags().StringVar(&rt.backend, "backend", "", "Storage backend (sqlite|file)")
	cmd.Flags().BoolVar(&add, "add", false, "Start in the form to add an item")
	cmd.Flags().StringVar(&editID, "edit", "", "Start in the form editing the item with this id")

	cmd.AddCommand(newListCmd(rt))
	cmd.AddCommand(newAddCmd(rt))
	cmd.AddCommand(newImportCmd(rt))
	cmd.AddCommand(newExportCmd(rt))
	cmd.AddCommand(newClearDoublesCmd(rt))

	return cmd
}

// open loads the configuration and the store. The TUI owns the terminal,
// so its logs go to the configured log file or nowhere.
func (rt *session) open(tui bool) (*service.CatalogService, *thumbnail.Processor, error) {
	cfg, err := config.Load(rt.configPath)
	if err != nil {
		return nil, nil, err
	}
	if rt.storePath != "" {
		cfg.WithStorePath(rt.storePath)
	}
	if rt.backend != "" {
		cfg.Backend = rt.backend
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	rt.cfg = cfg

	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		rt.logFile = f
		logOut = f
	} else if tui {
		logOut = io.Discard
	}
	log.Configure(log.Config{Level: cfg.LogLevel, Output: logOut})

	if cfg.Backend == config.BackendSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	repo, err := repository.Open(cfg.Backend, cfg.StorePath, cfg.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	rt.repo = repo

	lg := log.WithComponent("main")

	lg.Debug().
		Str("backend", cfg.Backend).
		Str("store", cfg.StorePath).
		Msg("store opened")

	catalog := service.NewCatalogService(repo,
		service.WithEditPolicy(models.ParseEditPolicy(cfg.EditPolicy)),
		service.WithLocale(service.ParseLocale(cfg.Locale)),
	)
	return catalog, thumbnail.NewProcessor(cfg.MaxImageWidth, cfg.JPEGQuality), nil
}

func (rt *session) close() error {
	var err error
	if rt.repo != nil {
		err = rt.repo.Close()
		rt.repo = nil
	}
	if rt.logFile != nil {
		rt.logFile.Close()
		rt.logFile = nil
	}
	return err
}
