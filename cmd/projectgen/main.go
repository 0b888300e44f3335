package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/singhbipin2117/gen-ai-project-generator/config"
	"github.com/singhbipin2117/gen-ai-project-generator/llm"
)

var (
	// Global flags
	verbose        bool
	configPath     string
	outputDir      string
	providerFlag   string
	modelFlag      string
	maxStepsFlag   int
	commandTimeout time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "projectgen",
	Short: "LLM-driven project structure generator",
	Long: `projectgen generates complete software project structures from a
natural-language description.

A planner model is driven through an iterative tool-call loop: it creates
directories, writes files, and runs setup commands inside a sandboxed output
directory until it declares the project complete or the step budget runs out.
Every action is recorded and reported in a final generation summary.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		// Explicit flags win over file and environment values.
		if cmd.Flags().Changed("output") {
			cfg.OutputDir = outputDir
		}
		if cmd.Flags().Changed("provider") {
			cfg.Provider = providerFlag
		}
		if cmd.Flags().Changed("model") {
			cfg.Model = modelFlag
		}
		if cmd.Flags().Changed("max-steps") {
			cfg.MaxSteps = maxStepsFlag
		}
		if cmd.Flags().Changed("command-timeout") {
			cfg.CommandTimeout = commandTimeout
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		// Models known to the catalog must be paired with their own
		// provider; unlisted models pass through untouched.
		if info := llm.GetModelInfo(cfg.Model); info != nil && info.Provider != cfg.Provider {
			return fmt.Errorf("model %q belongs to provider %q, not %q",
				cfg.Model, info.Provider, cfg.Provider)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: projectgen.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", ".", "Directory to generate the project into")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "openai", "LLM provider (openai, anthropic, gemini)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "gpt-4o", "Planner model")
	rootCmd.PersistentFlags().IntVar(&maxStepsFlag, "max-steps", 25, "Planner-call budget per generation")
	rootCmd.PersistentFlags().DurationVar(&commandTimeout, "command-timeout", 2*time.Minute, "Per-command timeout, 0 to disable")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(readmeCmd)
	rootCmd.AddCommand(modelsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
