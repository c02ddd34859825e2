// Package main provides the templechat CLI application entry point.
// Templechat is a bounded counseling chat with a monk or nun persona.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"templechat/internal/config"
	"templechat/internal/limiter"
	"templechat/internal/llm"
	"templechat/internal/logger"
	"templechat/internal/persona"
	"templechat/internal/tui"
	"templechat/internal/version"
	"templechat/pkg/chattypes"
)

var (
	logLevel    string
	logFile     string
	providerArg string
	modelArg    string
	personaArg  string
	stateDirArg string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "templechat",
	Short: "Templechat - a quiet counseling chat with a monk or nun",
	Long: `Templechat is a terminal chat with a Buddhist monk or Catholic nun persona.
Conversations are bounded: the turn budget persists across runs and can only
be cleared by explicitly deleting the chat records.`,
	RunE: runChat, // Default behavior is to start the chat
}

// chatCmd represents the chat command (explicit version of default behavior)
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a conversation",
	Long:  `Start the interactive conversation with the configured persona.`,
	RunE:  runChat,
}

// resetCmd deletes the persisted chat records including the turn counter.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete chat records and restore the full turn budget",
	RunE:  runReset,
}

// remainingCmd prints how many turns are left.
var remainingCmd = &cobra.Command{
	Use:   "remaining",
	Short: "Show how many conversation turns are left",
	RunE:  runRemaining,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := version.Validate(); err != nil {
			return err
		}
		fmt.Println(version.Get().String())
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&providerArg, "provider", "", "Completion provider (openai|openai-sdk|anthropic|gemini)")
	rootCmd.PersistentFlags().StringVar(&modelArg, "model", "", "Model name for the completion request")
	rootCmd.PersistentFlags().StringVar(&personaArg, "persona", "", "Persona to talk with (monk|nun)")
	rootCmd.PersistentFlags().StringVar(&stateDirArg, "state-dir", "", "Directory for persisted chat state")

	for _, flag := range []string{"log-level", "log-file", "provider", "model", "persona", "state-dir"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(remainingCmd)
	rootCmd.AddCommand(versionCmd)

	// Configure logger before any command execution
	cobra.OnInitialize(initLogging)
}

func initLogging() {
	if err := logger.Configure(logLevel, logFile, false); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

// loadRuntime resolves configuration and applies flag overrides.
func loadRuntime() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if providerArg != "" {
		cfg.Provider = providerArg
	}
	if modelArg != "" {
		cfg.Model = modelArg
	}
	if personaArg != "" {
		cfg.Persona = personaArg
	}
	if stateDirArg != "" {
		cfg.StateDir = stateDirArg
	}
	return cfg, nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntime()
	if err != nil {
		return err
	}

	catalog, err := persona.LoadCatalog()
	if err != nil {
		return err
	}
	selected, err := catalog.Get(cfg.Persona)
	if err != nil {
		return err
	}

	apiKey := config.APIKeyFor(cfg.Provider)
	params := chattypes.Params{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
	client, err := llm.NewFactory().ClientFor(cfg.Provider, apiKey, cfg.BaseURL, params)
	if err != nil {
		return err
	}

	lim := limiter.New(limiter.NewFileCounterStore(cfg.StateDir))
	logger.Info("starting templechat", "version", version.Version, "persona", selected.ID, "provider", cfg.Provider)

	cmd.SilenceUsage = true
	return tui.Run(tui.Config{Persona: selected, Limiter: lim, Client: client})
}

func runReset(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntime()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	lim := limiter.New(limiter.NewFileCounterStore(cfg.StateDir))
	if err := lim.Reset(); err != nil {
		return err
	}
	fmt.Printf("Chat records deleted. %d turns available.\n", limiter.MaxTurns)
	return nil
}

func runRemaining(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntime()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	lim := limiter.New(limiter.NewFileCounterStore(cfg.StateDir))
	fmt.Printf("%d of %d turns remaining.\n", lim.Remaining(), limiter.MaxTurns)
	return nil
}
