package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/mcp-packager/internal/service/inspector"
)

var (
	// infoProjectDir overrides the configured project directory.
	infoProjectDir string

	// infoCmd prints a summary of the project manifest and the last artifact.
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Show the project manifest and the last packaged artifact",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &inspector.Options{
				ConfigPath: configPath,
				ProjectDir: infoProjectDir,
				Out:        command.OutOrStdout(),
			}

			return inspector.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	infoCmd.Flags().StringVarP(&infoProjectDir, "project-dir", "p", "",
		"directory of the project to inspect")

	rootCmd.AddCommand(infoCmd)
}
