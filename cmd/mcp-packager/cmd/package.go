package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/mcp-packager/internal/service/packager"
)

var (
	// packageProjectDir overrides the configured project directory.
	packageProjectDir string
	// packageEntryPoint overrides the configured entry point script.
	packageEntryPoint string
	// packageOutputName overrides the configured executable name.
	packageOutputName string

	// packageCmd represents the full packaging workflow.
	packageCmd = &cobra.Command{
		Use:   "package",
		Short: "Install dependencies, verify the platform and freeze the executable",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &packager.Options{
				ConfigPath: configPath,
				ProjectDir: packageProjectDir,
				EntryPoint: packageEntryPoint,
				OutputName: packageOutputName,
			}

			return packager.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	packageCmd.Flags().StringVarP(&packageProjectDir, "project-dir", "p", "",
		"directory of the project to package")
	packageCmd.Flags().StringVarP(&packageEntryPoint, "entry-point", "e", "",
		"script the executable starts from")
	packageCmd.Flags().StringVarP(&packageOutputName, "output-name", "o", "",
		"name of the produced executable")

	rootCmd.AddCommand(packageCmd)
}
