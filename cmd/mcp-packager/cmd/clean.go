package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/mcp-packager/internal/service/cleaner"
)

var (
	// cleanProjectDir overrides the configured project directory.
	cleanProjectDir string

	// cleanCmd removes packaging leftovers from the project.
	cleanCmd = &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts and temporary packaging files",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &cleaner.Options{
				ConfigPath: configPath,
				ProjectDir: cleanProjectDir,
			}

			return cleaner.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	cleanCmd.Flags().StringVarP(&cleanProjectDir, "project-dir", "p", "",
		"directory of the project to clean")

	rootCmd.AddCommand(cleanCmd)
}
