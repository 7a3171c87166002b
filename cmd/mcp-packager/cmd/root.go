package cmd

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rusq/osenv/v2"
	"github.com/spf13/cobra"

	"github.com/oshokin/mcp-packager/internal/logger"
	"github.com/oshokin/mcp-packager/internal/runner"
	"github.com/oshokin/mcp-packager/internal/version"
)

const (
	// envConfigPath overrides the default settings file location.
	envConfigPath = "MCP_PACKAGER_CONFIG"
	// envLogLevel overrides the default logging level.
	envLogLevel = "MCP_PACKAGER_LOG_LEVEL"
)

// Environment files are loaded before flag defaults read the environment:
// package-level variables are initialized ahead of every init function.
var _ = loadEnvironmentFiles()

var (
	// configPath to the settings YAML file.
	configPath string
	// logLevel is the minimum severity the workflow logs at.
	logLevel string

	// rootCmd represents the base command of the packaging workflow.
	rootCmd = &cobra.Command{
		Use:   "mcp-packager",
		Short: "Package an MCP server into a single-file executable",
		Long: `mcp-packager drives the packaging workflow of an MCP server project:
it installs dependencies, verifies the host platform, freezes the entry
point into a single-file executable and records an artifact description
so the result can be deployed with checksum verification.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				logger.Warnf(context.Background(), "Unknown log level %q, staying on the default", logLevel)

				return
			}

			logger.SetLevel(level)
		},
	}
)

// Execute runs the mcp-packager CLI and exits with non-zero status on error.
// Failures of external packaging tools keep their original exit code.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		if code := runner.ExitCode(err); code > 0 {
			os.Exit(code)
		}

		os.Exit(1)
	}
}

// loadEnvironmentFiles reads dotenv files from the working directory.
// Missing files are fine, the environment simply stays as is.
func loadEnvironmentFiles() error {
	for _, name := range []string{".env", ".env.txt"} {
		_ = godotenv.Load(name)
	}

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup persistent flags shared by all subcommands.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c",
		osenv.Value(envConfigPath, ""),
		"path to configuration file (environment: "+envConfigPath+")")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l",
		osenv.Value(envLogLevel, "info"),
		"logging level: debug, info, warn or error (environment: "+envLogLevel+")")
}
