package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"lifelike/internal/config"
	"lifelike/internal/editor"
	"lifelike/internal/logging"
	"lifelike/internal/sims/lifelike"
	"lifelike/internal/store"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals()...)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lifelike",
		Short: "Life-like cellular automaton simulator",
		Long: `lifelike runs toroidal Life-like cellular automata with configurable
birth/survival rules. Settled grids are detected and reseeded with a fresh
pattern, and small isolated still lifes can be reaped automatically.

Run it headless (run, survey), in a terminal (tui) or in a window (gui).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.lifelike/config.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, trace, warn, error")
	rootCmd.PersistentFlags().String("preset", "", "Named rule preset (see 'lifelike rules')")
	rootCmd.PersistentFlags().StringArray("set", nil, "Simulator override in key=value form (repeatable)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newSurveyCmd(),
		newTUICmd(),
		newGUICmd(),
		newRulesCmd(),
		newSlotsCmd(),
	)
	return rootCmd
}

// loadConfig resolves the configuration for cmd: defaults, file and
// environment, then the --preset, --set and --log-level flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if preset, _ := cmd.Flags().GetString("preset"); preset != "" {
		cfg.Sim.Preset = preset
	}
	sets, _ := cmd.Flags().GetStringArray("set")
	overrides, err := parseOverrides(sets)
	if err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(overrides)
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// parseOverrides turns key=value pairs into a map.
func parseOverrides(kvs []string) (map[string]string, error) {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", kv)
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}

func newSimulator(cfg *config.Config, logger *slog.Logger) *lifelike.Simulator {
	sim := lifelike.NewWithConfig(cfg.Lifelike())
	sim.SetLogger(logger)
	return sim
}

func newEditor(cfg *config.Config, slots store.SlotStore, logger *slog.Logger) *editor.Editor {
	ed := editor.New(newSimulator(cfg, logger), slots, cfg.Display.Interval)
	ed.SetLogger(logger)
	return ed
}

// openStore opens the configured slot store. An empty path keeps slots in
// memory.
func openStore(ctx context.Context, cfg *config.Config) (store.SlotStore, error) {
	if cfg.Store.Path == "" {
		return store.NewMemoryStore(), nil
	}
	s, err := store.OpenSQLite(ctx, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening slot store: %w", err)
	}
	return s, nil
}
