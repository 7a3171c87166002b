package cleaner

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/oshokin/mcp-packager/internal/config"
	"github.com/oshokin/mcp-packager/internal/logger"
)

// Options contains inputs for the cleanup entry point.
type Options struct {
	// ConfigPath is an optional path to the settings YAML file.
	ConfigPath string
	// ProjectDir overrides the configured project directory when set.
	ProjectDir string
}

// Run removes the dist folder, the build folder and stray spec files.
// Missing targets are expected and all cleanup problems are logged and
// suppressed, so repeated runs always succeed.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "cleaner")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.Warnf(ctx, "Unable to load settings, using defaults: %v", err)

		cfg = config.Default()
	}

	if opts.ProjectDir != "" {
		cfg.ProjectDir = opts.ProjectDir
	}

	removeFolder(ctx, cfg.DistPath())
	removeFolder(ctx, cfg.BuildPath())
	removeSpecFiles(ctx, cfg.ProjectDir)

	logger.Info(ctx, "Cleanup completed")

	return nil
}

// removeFolder deletes a folder tree, tolerating absence.
func removeFolder(ctx context.Context, path string) {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnf(ctx, "Unable to inspect %s: %v", path, err)
		}

		return
	}

	if err := os.RemoveAll(path); err != nil {
		logger.Warnf(ctx, "Unable to remove %s: %v", path, err)

		return
	}

	logger.InfoKV(ctx, "Removed folder", "path", path)
}

// removeSpecFiles deletes intermediate freezer spec files, tolerating absence.
func removeSpecFiles(ctx context.Context, projectDir string) {
	matches, err := filepath.Glob(filepath.Join(projectDir, "*.spec"))
	if err != nil {
		logger.Warnf(ctx, "Unable to look up spec files: %v", err)

		return
	}

	for _, match := range matches {
		if err = os.Remove(match); err != nil {
			logger.Warnf(ctx, "Unable to remove %s: %v", match, err)

			continue
		}

		logger.InfoKV(ctx, "Removed spec file", "path", match)
	}
}
