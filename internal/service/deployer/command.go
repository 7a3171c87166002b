package deployer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/mcp-packager/internal/config"
	domain "github.com/oshokin/mcp-packager/internal/domain/artifact"
	"github.com/oshokin/mcp-packager/internal/logger"
	repo "github.com/oshokin/mcp-packager/internal/repository/description"
	"github.com/oshokin/mcp-packager/internal/service/packager"
)

// Options contains inputs for the deploy entry point.
type Options struct {
	// ConfigPath is an optional path to the settings YAML file.
	ConfigPath string
	// TargetFolder overrides the configured deploy folder when set.
	TargetFolder string
}

var (
	// errPackagerRunning indicates a packaging run is in flight.
	errPackagerRunning = errors.New("a packaging run is in flight")
	// errTargetFolderRequired is returned when no deploy folder is configured.
	errTargetFolderRequired = errors.New("deploy folder must be provided")
)

// deployer holds the collaborators for a single deploy run.
// Callers go through Run, which performs setup and checks the run guard.
type deployer struct {
	// cfg holds the effective packaging settings.
	cfg *config.Config
	// repo loads the artifact description from the dist folder.
	repo repo.Repository
}

// Run installs the frozen artifact from the dist folder into the target folder.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "deployer")

	if packager.IsPackagerRunningNow(ctx) {
		return errPackagerRunning
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("initialize deployer: %w", err)
	}

	if opts.TargetFolder != "" {
		cfg.DeployFolder = opts.TargetFolder
	}

	if cfg.DeployFolder == "" {
		return errTargetFolderRequired
	}

	d := newDeployer(cfg, repo.NewDistRepository(cfg.DistPath()))

	if err = d.run(ctx); err != nil {
		return fmt.Errorf("deploy failed: %w", err)
	}

	logger.Info(ctx, "Deploy completed successfully")

	return nil
}

// newDeployer assembles a deploy run from its collaborators.
func newDeployer(cfg *config.Config, repository repo.Repository) *deployer {
	return &deployer{
		cfg:  cfg,
		repo: repository,
	}
}

// run verifies the artifact against its description and applies it to the target.
func (d *deployer) run(ctx context.Context) error {
	desc, err := d.repo.Load(ctx)
	if err != nil {
		return err
	}

	artifactPath := filepath.Join(d.cfg.DistPath(), desc.Name)

	logger.InfoKV(ctx, "Verifying artifact", "path", artifactPath)

	if err = desc.Verify(artifactPath); err != nil {
		return err
	}

	if err = d.apply(ctx, desc, artifactPath); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Installed artifact",
		"path", filepath.Join(d.cfg.DeployFolder, desc.Name),
		"version", desc.Version,
		"build_id", desc.BuildID)

	return nil
}

// apply replaces the target file with the artifact using checksum validation.
func (d *deployer) apply(ctx context.Context, desc *domain.Description, artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}

	checksum, err := domain.DecodeChecksum(desc.Checksum)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(d.cfg.DeployFolder, 0o755); err != nil {
		return err
	}

	targetPath := filepath.Join(d.cfg.DeployFolder, desc.Name)

	if _, err = os.Stat(targetPath); err != nil && os.IsNotExist(err) {
		if _, err = os.Create(targetPath); err != nil {
			return err
		}
	}

	logger.Debug(ctx, "Applying update")

	options := &goupdate.Options{
		TargetPath: targetPath,
		TargetMode: domain.DefaultFileMode,
		Checksum:   checksum,
		Hash:       domain.DefaultChecksumFunction,
	}

	if err = goupdate.Apply(bytes.NewReader(data), *options); err != nil {
		return err
	}

	oldPath := targetPath + ".old"
	if _, err = os.Stat(oldPath); err == nil {
		_ = os.Remove(oldPath)
	}

	return nil
}
