package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/tasktimer/internal/app"
	"github.com/sandeepkv93/tasktimer/internal/commands"
	"github.com/sandeepkv93/tasktimer/internal/storage"
	"github.com/sandeepkv93/tasktimer/internal/store"
	"github.com/sandeepkv93/tasktimer/internal/views"
	"github.com/spf13/cobra"
)

// config layers defaults, the YAML file, environment and flags, in that
// order.
func (o *globalOptions) config() (app.Config, error) {
	path := o.configPath
	if path == "" {
		path = app.DefaultConfigPath()
	} else if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return app.Config{}, fmt.Errorf("config file %s does not exist", path)
	}

	cfg, err := app.LoadConfigFile(path, app.DefaultConfig())
	if err != nil {
		return app.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg = app.ConfigFromEnv(cfg)

	if strings.TrimSpace(o.dataDir) != "" {
		cfg.DataDir = o.dataDir
	}
	if strings.TrimSpace(o.backend) != "" {
		cfg.Backend = strings.ToLower(o.backend)
	}
	if o.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func (o *globalOptions) category() (store.Category, error) {
	return store.ParseCategory(o.taskType)
}

// environment is an opened repository plus a dispatcher writing to the
// command's streams.
type environment struct {
	cfg        app.Config
	repo       storage.Repository
	dispatcher *app.Dispatcher
}

func (o *globalOptions) open(cmd *cobra.Command) (*environment, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

	repo, err := storage.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open %s storage in %s: %w", cfg.Backend, cfg.DataDir, err)
	}
	logger.Debug("storage opened", "backend", cfg.Backend, "dir", cfg.DataDir)

	d := app.NewDispatcher(repo, app.NewConsoleConfirmer(cmd.InOrStdin(), cmd.OutOrStdout()))
	d.Styles = views.NewStyles(lipgloss.NewRenderer(cmd.OutOrStdout()))
	d.Logger = logger
	return &environment{cfg: cfg, repo: repo, dispatcher: d}, nil
}

func (e *environment) Close() error {
	return e.repo.Close()
}

// runCommand validates the category, runs one command and prints its
// result. Only storage and argument failures become a non-zero exit.
func runCommand(cmd *cobra.Command, o *globalOptions, command commands.Command) error {
	category, err := o.category()
	if err != nil {
		return err
	}
	env, err := o.open(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	res, err := env.dispatcher.Run(cmd.Context(), category, command)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), views.RenderResult(env.dispatcher.Styles, res))
	return nil
}
