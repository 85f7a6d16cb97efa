package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/sift/internal/api"
	"github.com/pders01/sift/internal/browser"
	"github.com/pders01/sift/internal/config"
	"github.com/pders01/sift/internal/debuglog"
	"github.com/pders01/sift/internal/finder"
	"github.com/pders01/sift/internal/history"
	"github.com/pders01/sift/internal/session"
	"github.com/pders01/sift/internal/tui"
	"github.com/pders01/sift/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	cfgFile string
	baseURL string
	debug   bool
	quiet   bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Semantic news search in the terminal",
	Long: `sift searches a news corpus by meaning and reads articles chunk by chunk.

Running sift without a subcommand opens the dashboard:
  search    type a query, enter to search, [ ] to page
  reader    the selected article, chunks bordered by relevance
  inspector chunks in relevance order, enter scrolls the reader, / finds`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return initConfig() },
	PersistentPostRun: func(cmd *cobra.Command, args []string) { _ = debuglog.Close() },
	RunE:              runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "search API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "skip startup banner")
}

// initConfig loads configuration, applies flag overrides and starts logging.
func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if baseURL != "" {
		normalized, err := validation.NewAPIURLValidator().ValidateAndNormalize(baseURL)
		if err != nil {
			return fmt.Errorf("--base-url %q: %w", baseURL, err)
		}
		cfg.API.BaseURL = normalized
	}
	if debug {
		cfg.Log.Level = "debug"
	}

	level := debuglog.ParseLogLevel(cfg.Log.Level)
	if level == debuglog.LevelOff {
		return debuglog.Setup(level, "")
	}
	logPath, err := validation.NewSecurePathHandler().LogPath(cfg.Log.Path)
	if err != nil {
		return fmt.Errorf("log.path: %w", err)
	}
	if err := debuglog.Setup(level, logPath); err != nil {
		return err
	}
	debuglog.WithFields(map[string]any{
		"base_url": cfg.API.BaseURL,
		"version":  Version,
	}).Infof("sift starting")
	return nil
}

// openHistory returns nil when history is disabled, which every history
// method treats as a no-op recorder.
func openHistory() (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	path, err := validation.NewSecurePathHandler().HistoryPath(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("history.path: %w", err)
	}
	store, err := history.Open(path, cfg.History.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return store, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	tui.ApplyColors(cfg.UI.Colors)
	if !quiet {
		tui.ShowBanner(Version)
	}

	hist, err := openHistory()
	if err != nil {
		return err
	}
	defer hist.Close()

	client := api.NewClient(cfg)
	app := tui.NewApp(cfg, tui.Options{
		Search:      session.NewSearchStore(client, cfg.API.SearchPageSize),
		Reading:     session.NewReadingStore(client, cfg.API.ChunkPageSize),
		Coordinator: session.NewCoordinator(),
		Finder:      finder.New(),
		History:     hist,
		Opener:      browser.NewLauncher(cfg),
	})
	defer app.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
