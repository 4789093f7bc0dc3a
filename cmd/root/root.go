// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"kharcha/expense-nlp/internal/common"
	"kharcha/expense-nlp/internal/config"
	"kharcha/expense-nlp/internal/container"
	"kharcha/expense-nlp/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	LogLevel     string
	Strategy     string
	CSVDelimiter string
	AIEnabled    bool
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "kharcha",
		Short: "A CLI tool that turns free-text expense notes into structured transactions.",
		Long: `kharcha parses statements such as "500 for petrol, got back 400 from sonu"
into categorized transactions. It can also answer questions about an expense
CSV and serve the parser over HTTP.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to kharcha!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c := GetContainer(); c != nil {
				if err := c.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	mu           sync.RWMutex
	appContainer *container.Container
	initOnce     sync.Once
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Strategy, "strategy", "s", "", "Parsing strategy: auto, clauses or segmented")
		Cmd.PersistentFlags().StringVar(&SharedFlags.CSVDelimiter, "csv-delimiter", "", "CSV field delimiter")
		Cmd.PersistentFlags().BoolVar(&SharedFlags.AIEnabled, "ai-enabled", false, "Enable the AI parsing path (requires GEMINI_API_KEY)")
	})
}

// setup loads configuration, applies flag overrides and builds the
// container. A container installed with SetContainer is kept.
func setup(cmd *cobra.Command) error {
	if GetContainer() != nil {
		return nil
	}

	config.LoadEnv()
	cfg, err := config.InitializeConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlags(cmd, cfg)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	SetContainer(c)
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.Strategy != "" {
		cfg.Parser.Strategy = SharedFlags.Strategy
	}
	if cmd.Flags().Changed("ai-enabled") {
		cfg.AI.Enabled = SharedFlags.AIEnabled
	}
	if SharedFlags.CSVDelimiter != "" {
		common.SetDelimiter([]rune(SharedFlags.CSVDelimiter)[0])
	}
}

// SetContainer installs c as the application container and makes its logger
// the shared one.
func SetContainer(c *container.Container) {
	mu.Lock()
	defer mu.Unlock()
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
		logging.SetLogger(Log)
	}
}

// GetContainer returns the application container, nil before setup.
func GetContainer() *container.Container {
	mu.RLock()
	defer mu.RUnlock()
	return appContainer
}
