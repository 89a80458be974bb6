package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations. Execute replaces it with a
// signal-aware context so an interrupt cancels in-flight analysis
// cooperatively.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "cogload",
	Short:              "Measure cognitive load and cohesion of structural units.",
	Long:               `Cogload scores each unit's working-memory burden against role ceilings and flags responsibility scattering.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".cogload") // Name of config file (without extension)
		viper.SetConfigType("yaml")     // We'll use YAML format
		viper.AddConfigPath(".")        // Look in the current directory
		viper.AddConfigPath("$HOME")    // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("COGLOAD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("format", schema.TextOut)
	viper.SetDefault("severity-threshold", schema.ErrorSeverity)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("cohesion-floor", contract.DefaultCohesionFloor)
	viper.SetDefault("stream-policy", schema.PerStage)
	viper.SetDefault("aggregate-policy", schema.SumAggregate)
	viper.SetDefault("min-cochange", contract.DefaultMinCoChange)
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return contract.NewConfigError(err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return contract.NewConfigError(err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.PathArgs = args

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	return contract.ProcessAndValidate(cfg, input)
}

// Execute runs the root command under a signal-aware context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCtx = ctx
	return rootCmd.Execute()
}

// ExitCode maps an Execute error onto the process exit-code contract:
// 1 for violations at/above threshold, 2 for invocation or configuration
// failures, 3 for unparseable units under --strict-parse.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cfgErr *contract.ConfigError
	switch {
	case errors.Is(err, contract.ErrStrictParse):
		return 3
	case errors.Is(err, contract.ErrViolations):
		return 1
	case errors.As(err, &cfgErr):
		return 2
	default:
		return 2
	}
}
