package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mealplan/internal/config"
	"mealplan/internal/logging"
	"mealplan/internal/plan"
	"mealplan/internal/state"
	"mealplan/internal/storage"
	"mealplan/internal/ui"
)

type options struct {
	configPath string
	dataDir    string
	storage    string
	verbose    bool
}

// app is everything a command needs once config, logging and storage are up.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend storage.Backend
	plan    *plan.Plan
	store   *state.Store
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.logger.Error("Failed to close storage", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func openApp(opts *options) (*app, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	// Flags win over the file and the environment
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.storage != "" {
		cfg.Storage = opts.storage
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.LogPath(), cfg.Logging.Level, opts.verbose)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	logger.Info("Storage opened", zap.String("kind", cfg.Storage), zap.String("dir", cfg.DataDir))

	p := plan.Default()
	return &app{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		plan:    p,
		store:   state.Load(backend, p, logger),
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "mealplan",
		Short: "A four day meal plan in your terminal",
		Long: `mealplan shows the week's meals, recipes and shopping list.

Run without arguments to open the interactive viewer. Meal completion,
checked shopping items and recipe images are saved between runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			m := ui.New(a.plan, a.store, ui.Options{Theme: a.cfg.Theme, Logger: a.logger})
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				a.logger.Error("UI exited with error", zap.Error(err))
				return fmt.Errorf("failed to run viewer: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory for saved state and logs")
	rootCmd.PersistentFlags().StringVar(&opts.storage, "storage", "", "Storage backend: file, sqlite or memory")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newResetCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
