package inspector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/oshokin/mcp-packager/internal/config"
	"github.com/oshokin/mcp-packager/internal/logger"
	"github.com/oshokin/mcp-packager/internal/manifest"
	repo "github.com/oshokin/mcp-packager/internal/repository/description"
)

// Options contains inputs for the info entry point.
type Options struct {
	// ConfigPath is an optional path to the settings YAML file.
	ConfigPath string
	// ProjectDir overrides the configured project directory when set.
	ProjectDir string
	// Out receives the printed summary, defaults to standard output.
	Out io.Writer
}

// Run prints a summary of the target project manifest and, when the dist
// folder holds one, the latest artifact description.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "inspector")

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.ProjectDir != "" {
		cfg.ProjectDir = opts.ProjectDir
	}

	m, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	var builder strings.Builder

	writeManifestSummary(&builder, m)
	writeArtifactSummary(ctx, &builder, cfg)

	_, err = io.WriteString(out, builder.String())

	return err
}

// writeManifestSummary renders the manifest fields the workflow cares about.
func writeManifestSummary(builder *strings.Builder, m *manifest.Manifest) {
	fmt.Fprintf(builder, "Project: %s %s\n", m.Project.Name, m.Project.Version)

	if m.Project.Description != "" {
		fmt.Fprintf(builder, "Description: %s\n", m.Project.Description)
	}

	if m.Project.RequiresPython != "" {
		fmt.Fprintf(builder, "Requires Python: %s\n", m.Project.RequiresPython)
	}

	fmt.Fprintf(builder, "Dependencies: %d runtime, %d dev\n",
		len(m.Project.Dependencies), len(m.DevDependencies()))

	if scripts := m.ConsoleScripts(); len(scripts) > 0 {
		fmt.Fprintf(builder, "Console scripts: %s\n", strings.Join(scripts, ", "))
	}

	if editable := m.EditableDependencies(); len(editable) > 0 {
		fmt.Fprintf(builder, "Editable dependencies: %s\n", strings.Join(editable, ", "))
	}

	if mode := m.Tool.Pytest.IniOptions.AsyncioMode; mode != "" {
		fmt.Fprintf(builder, "Pytest asyncio mode: %s\n", mode)
	}
}

// writeArtifactSummary renders the latest packaged artifact, when dist has one.
func writeArtifactSummary(ctx context.Context, builder *strings.Builder, cfg *config.Config) {
	desc, err := repo.NewDistRepository(cfg.DistPath()).Load(ctx)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			logger.Warnf(ctx, "Unable to read artifact description: %v", err)
		}

		return
	}

	fmt.Fprintf(builder, "Last artifact: %s (version %s, build %s, built by %s at %s)\n",
		desc.Name, desc.Version, desc.BuildID, desc.BuiltBy, desc.CreatedAt.Format(time.RFC3339))
}
