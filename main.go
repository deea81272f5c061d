package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aerosuite/inspect-tui/app"
	"github.com/aerosuite/inspect-tui/config"
	"github.com/aerosuite/inspect-tui/logging"
	"github.com/aerosuite/inspect-tui/source"
	"github.com/aerosuite/inspect-tui/style"
)

var version = "dev"

var (
	// Global flags
	configPath string
	dbPath     string
	profile    string
	themeName  string
	logFile    string
	noColor    bool

	// Seed flags
	seedCount int
	seedValue uint64
)

// demoRecords is the size of the generated collection browsed when no
// database is configured.
const demoRecords = 5000

var rootCmd = &cobra.Command{
	Use:     "aeroinspect",
	Short:   "Browse supplier inspection records",
	Version: version,
	Long: `aeroinspect is a full-screen browser for aerospace supplier inspections.

Records are read from a SQLite database one batch at a time as you scroll.
Without --db (or db_path in the config file) a generated demo collection is
shown instead.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowser(cmd.Context())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create or extend the inspection database with generated records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <profile dir>/aeroinspect.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite inspection database")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "Named profile for state isolation (~/.aeroinspect/profiles/<name>)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Color theme: auto, dark, light, hangar, tokyo-night")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors")

	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 10000, "Number of records to generate")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 1, "Generator seed; the same seed yields the same records")

	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// profileDir returns ~/.aeroinspect, or the named profile below it.
func profileDir() string {
	home, _ := os.UserHomeDir()
	if profile != "" {
		return filepath.Join(home, ".aeroinspect", "profiles", profile)
	}
	return filepath.Join(home, ".aeroinspect")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.Path(profileDir())
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	return cfg, nil
}

func runBrowser(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if noColor {
		os.Setenv("NO_COLOR", "1")
	}
	applyTheme(cfg.Theme, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store, label, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	glamourStyle := "light"
	switch {
	case noColor:
		glamourStyle = "notty"
	case style.IsDark():
		glamourStyle = "dark"
	}

	m := app.New(store, cfg, app.Options{
		Logger:       logger,
		Source:       label,
		GlamourStyle: glamourStyle,
		Context:      ctx,
	})
	logger.Info("starting", zap.String("version", version), zap.String("source", label))

	// AltScreen and mouse mode are set on the View returned by the model.
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("aeroinspect: %w", err)
	}
	return nil
}

// applyTheme sets the color theme. "auto" follows the terminal background.
func applyTheme(name string, logger *zap.Logger) {
	if name == "" || name == "auto" {
		if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
			style.SetTheme("dark")
		} else {
			style.SetTheme("light")
		}
		return
	}
	if !style.SetTheme(name) {
		logger.Warn("unknown theme, keeping default", zap.String("theme", name))
	}
}

// openStore opens the configured database, or a generated in-memory
// collection when none is set. The store is wrapped with the configured
// artificial latency.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (source.Store, string, func(), error) {
	var (
		store     source.Store
		label     string
		closeFunc func()
	)
	if cfg.DBPath != "" {
		s, err := source.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, "", nil, err
		}
		store, label = s, cfg.DBPath
		closeFunc = func() {
			if err := s.Close(); err != nil {
				logger.Warn("close database", zap.Error(err))
			}
		}
	} else {
		records, err := source.Generate(demoRecords, 1)
		if err != nil {
			return nil, "", nil, err
		}
		s := source.NewMemoryStore(records)
		store, label = s, fmt.Sprintf("demo (%d generated records)", demoRecords)
		closeFunc = func() { _ = s.Close() }
	}
	if cfg.Latency > 0 {
		store = source.Delayed{Store: store, Latency: cfg.Latency}
	}
	return store, label, closeFunc, nil
}

func runSeed(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.DBPath
	if path == "" {
		path = filepath.Join(profileDir(), "inspections.db")
	}
	if seedCount <= 0 {
		return fmt.Errorf("--count must be positive, got %d", seedCount)
	}

	records, err := source.Generate(seedCount, seedValue)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	s, err := source.OpenSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Insert(ctx, records); err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	n, err := s.Count(ctx, source.Query{})
	if err != nil {
		return err
	}
	fmt.Printf("%s now holds %d inspections\n", path, n)
	return nil
}
