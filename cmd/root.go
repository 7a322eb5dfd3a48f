package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/brk3/habittracker/internal/config"
	"github.com/brk3/habittracker/internal/logger"
	"github.com/brk3/habittracker/internal/metrics"
	"github.com/brk3/habittracker/internal/storage"
	"github.com/brk3/habittracker/internal/storage/bolt"
	"github.com/brk3/habittracker/internal/storage/file"
	"github.com/brk3/habittracker/internal/storage/sqlite"
	"github.com/brk3/habittracker/internal/tracker"
	"github.com/brk3/habittracker/pkg/habit"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *config.Config
	tr         *tracker.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Track weekly habits from the terminal",
	Long: `
	Habits is a CLI tool to register recurring habits with a weekly target, mark them
	done, and follow progress over a rolling seven day window. Run "habits menu" for
	the interactive menu.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln("Error:", describe(err))
		_ = teardown()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HABITS_CONFIG or ./config.yaml)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath, true)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logger.Init(level, cfg.LogFormat, cmd.ErrOrStderr())

	if cmd.Annotations["store"] == "none" {
		return nil
	}
	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("error opening %s store at %s: %w", cfg.Backend, cfg.DataPath, err)
	}
	tr, err = tracker.Open(st)
	if err != nil {
		_ = st.Close()
		return err
	}
	return nil
}

func teardown() error {
	if tr == nil {
		return nil
	}
	err := tr.Close()
	tr = nil
	if cfg != nil {
		_ = metrics.WriteTextfile(cfg.MetricsTextfile)
	}
	return err
}

// openStore opens the configured backend. A database file the driver rejects
// as corrupt is moved to <path>.corrupt and a fresh one is created; the file
// backend reports corrupt content from Load instead.
func openStore(c *config.Config) (storage.Store, error) {
	log := logger.With("backend", c.Backend, "path", c.DataPath)
	log.Debug("Opening store")
	st, err := openBackend(c)
	if !errors.Is(err, habit.ErrCorruptData) {
		return st, err
	}

	aside := c.DataPath + ".corrupt"
	log.Warn("Stored habits are corrupt, starting empty", "error", err, "moved_to", aside)
	metrics.RecordOperation("load", metrics.ResultInvalid)
	if err := os.Rename(c.DataPath, aside); err != nil {
		return nil, fmt.Errorf("move corrupt store aside: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(c.DataPath + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("remove stale %s file: %w", suffix, err)
		}
	}
	return openBackend(c)
}

func openBackend(c *config.Config) (storage.Store, error) {
	switch c.Backend {
	case config.BackendBolt:
		return bolt.Open(c.DataPath)
	case config.BackendSQLite:
		return sqlite.Open(c.DataPath)
	default:
		return file.Open(c.DataPath)
	}
}

// describe turns tracker errors into the messages shown to the user.
func describe(err error) string {
	if errors.Is(err, habit.ErrNotFound) {
		return "habit not found"
	}
	return err.Error()
}
