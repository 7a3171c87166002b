package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/mcp-packager/internal/config"
	domain "github.com/oshokin/mcp-packager/internal/domain/artifact"
	"github.com/oshokin/mcp-packager/internal/domain/platform"
	"github.com/oshokin/mcp-packager/internal/logger"
	"github.com/oshokin/mcp-packager/internal/manifest"
	repo "github.com/oshokin/mcp-packager/internal/repository/description"
	"github.com/oshokin/mcp-packager/internal/runner"
	"github.com/oshokin/mcp-packager/internal/service/common"
)

// Options contains inputs for the packaging entry point.
type Options struct {
	// ConfigPath is an optional path to the settings YAML file.
	ConfigPath string
	// ProjectDir overrides the configured project directory when set.
	ProjectDir string
	// EntryPoint overrides the configured entry point when set.
	EntryPoint string
	// OutputName overrides the configured artifact name when set.
	OutputName string
}

var (
	// errPackagerRunning indicates another packaging run is already in flight.
	errPackagerRunning = errors.New("another packaging run is in flight")
	// errArtifactMissing indicates the freezer did not produce the expected artifact.
	errArtifactMissing = errors.New("artifact not found after freeze")
)

// workflow holds the collaborators for a single packaging run.
// Callers go through Run, which performs setup and holds the run guard.
type workflow struct {
	// cfg holds the effective packaging settings.
	cfg *config.Config
	// host is the environment triple consulted by the platform gate.
	host platform.Host
	// runner executes the external installer and freezer tools.
	runner runner.Runner
	// repo persists the artifact description into the dist folder.
	repo repo.Repository
}

// Run executes the packaging workflow.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "packager")

	if IsPackagerRunningNow(ctx) {
		return errPackagerRunning
	}

	if err := createRunMarker(); err != nil {
		return fmt.Errorf("create run marker: %w", err)
	}

	defer removeRunMarker()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("initialize packager: %w", err)
	}

	applyOverrides(cfg, opts)

	if err = config.Save(opts.ConfigPath, cfg); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	w := newWorkflow(cfg, platform.DetectHost(), runner.NewExecRunner(), repo.NewDistRepository(cfg.DistPath()))

	if err = w.run(ctx); err != nil {
		return fmt.Errorf("packaging failed: %w", err)
	}

	logger.Info(ctx, "Packaging completed successfully")

	return nil
}

// applyOverrides folds command-line overrides into the loaded settings.
func applyOverrides(cfg *config.Config, opts *Options) {
	if opts.ProjectDir != "" {
		cfg.ProjectDir = opts.ProjectDir
	}

	if opts.EntryPoint != "" {
		cfg.EntryPoint = opts.EntryPoint
	}

	if opts.OutputName != "" {
		cfg.OutputName = opts.OutputName
	}
}

// newWorkflow assembles a packaging run from its collaborators.
func newWorkflow(cfg *config.Config, host platform.Host, run runner.Runner, repository repo.Repository) *workflow {
	return &workflow{
		cfg:    cfg,
		host:   host,
		runner: run,
		repo:   repository,
	}
}

// run executes the workflow steps in order:
// 1) Install project dependencies.
// 2) Check the platform gate.
// 3) Freeze the entry point into a single executable.
// 4) Remove intermediate spec files.
// 5) Describe the produced artifact.
func (w *workflow) run(ctx context.Context) error {
	logger.Info(ctx, "Installing project dependencies")

	if err := w.install(ctx); err != nil {
		return fmt.Errorf("install dependencies: %w", err)
	}

	logger.InfoKV(ctx, "Checking the platform gate",
		"os", w.host.OS,
		"architecture", w.host.Architecture,
		"wow64_architecture", w.host.WOW64Architecture)

	if err := platform.Check(w.host); err != nil {
		return err
	}

	logger.Info(ctx, "Freezing the entry point into a single executable")

	if err := w.freeze(ctx); err != nil {
		return fmt.Errorf("freeze executable: %w", err)
	}

	w.removeSpecFiles(ctx)

	desc, err := w.describeArtifact(ctx)
	if err != nil {
		return err
	}

	w.printNextSteps(ctx, desc)

	return nil
}

// install runs the configured dependency installer.
func (w *workflow) install(ctx context.Context) error {
	return w.runTool(ctx, w.cfg.Installer)
}

// freeze runs the configured freezer with the computed packaging arguments.
func (w *workflow) freeze(ctx context.Context) error {
	argv := append([]string(nil), w.cfg.Freezer...)
	argv = append(argv,
		"--onefile",
		"--name", w.cfg.OutputName,
		"--distpath", w.cfg.DistFolder,
		w.cfg.EntryPoint,
	)

	return w.runTool(ctx, argv)
}

// runTool executes one external tool argv in the project directory.
func (w *workflow) runTool(ctx context.Context, argv []string) error {
	toolCtx, cancel := context.WithTimeout(ctx, w.cfg.ToolTimeout)
	defer cancel()

	command := runner.Command{
		Name: argv[0],
		Args: argv[1:],
		Dir:  w.cfg.ProjectDir,
	}

	logger.InfoKV(ctx, "Running external tool", "command", command.String())

	return w.runner.Run(toolCtx, command)
}

// removeSpecFiles deletes intermediate freezer spec files, tolerating absence.
func (w *workflow) removeSpecFiles(ctx context.Context) {
	matches, err := filepath.Glob(filepath.Join(w.cfg.ProjectDir, "*.spec"))
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

// describeArtifact verifies the produced executable and records its description.
func (w *workflow) describeArtifact(ctx context.Context) (*domain.Description, error) {
	name := domain.ExecutableName(w.cfg.OutputName)
	path := filepath.Join(w.cfg.DistPath(), name)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, errArtifactMissing)
		}

		return nil, fmt.Errorf("stat artifact: %w", err)
	}

	checksum, err := domain.FileChecksum(path)
	if err != nil {
		return nil, err
	}

	desc := domain.NewDescription(name, w.projectVersion(ctx))
	desc.Checksum = domain.EncodeChecksum(checksum)

	actor, err := common.DetectActor()
	if err != nil {
		logger.Warnf(ctx, "Unable to detect builder identity: %v", err)
	} else {
		desc.BuiltBy = actor
	}

	logger.InfoKV(ctx, "Saving artifact description",
		"path", filepath.Join(w.cfg.DistPath(), domain.DescriptionFilename))

	if err = w.repo.Save(ctx, desc); err != nil {
		return nil, fmt.Errorf("save artifact description: %w", err)
	}

	return desc, nil
}

// projectVersion reads the packaged project version from its manifest.
// A missing or unreadable manifest is not fatal, the version stays unknown.
func (w *workflow) projectVersion(ctx context.Context) string {
	m, err := manifest.Load(w.cfg.ManifestPath())
	if err != nil {
		logger.Warnf(ctx, "Unable to read project manifest: %v", err)

		return ""
	}

	return m.Project.Version
}

// printNextSteps logs human-readable guidance for the produced artifact.
func (w *workflow) printNextSteps(ctx context.Context, desc *domain.Description) {
	var builder strings.Builder

	builder.WriteString("Produced ")
	builder.WriteString(filepath.Join(w.cfg.DistPath(), desc.Name))
	builder.WriteString(" (version ")
	builder.WriteString(desc.Version)
	builder.WriteString(", build ")
	builder.WriteString(desc.BuildID)
	builder.WriteString(")\n")
	builder.WriteString("To install it on this machine, run: mcp-packager deploy --target <folder>")

	logger.Info(ctx, builder.String())
}
