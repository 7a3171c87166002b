package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/mcp-packager/internal/service/deployer"
)

var (
	// deployTargetFolder is where the packaged executable is installed.
	deployTargetFolder string

	// deployCmd installs the packaged executable with checksum verification.
	deployCmd = &cobra.Command{
		Use:   "deploy",
		Short: "Install the packaged executable into a target folder",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &deployer.Options{
				ConfigPath:   configPath,
				TargetFolder: deployTargetFolder,
			}

			return deployer.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	deployCmd.Flags().StringVarP(&deployTargetFolder, "target", "t", "",
		"folder the executable is installed into")

	rootCmd.AddCommand(deployCmd)
}
