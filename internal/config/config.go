package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds packaging workflow settings shared by the workflow commands.
type Config struct {
	// ProjectDir is the Python project root where external tools are invoked.
	ProjectDir string `yaml:"project_dir"`
	// ManifestFile is the project manifest path, relative to ProjectDir.
	ManifestFile string `yaml:"manifest_file"`
	// EntryPoint is the script the freezer turns into an executable,
	// relative to ProjectDir.
	EntryPoint string `yaml:"entry_point"`
	// OutputName is the base name of the produced executable.
	OutputName string `yaml:"output_name"`
	// DistFolder receives the frozen executable, relative to ProjectDir
	// unless absolute.
	DistFolder string `yaml:"dist_folder"`
	// BuildFolder is the freezer's intermediate workspace, relative to
	// ProjectDir unless absolute.
	BuildFolder string `yaml:"build_folder"`
	// DeployFolder is where the deploy command installs the artifact.
	// It has no default and is required only by deploy.
	DeployFolder string `yaml:"deploy_folder,omitempty"`
	// Installer is the dependency installation command with its arguments.
	Installer []string `yaml:"installer"`
	// Freezer is the executable freezing command with its arguments.
	Freezer []string `yaml:"freezer"`
	// ToolTimeout bounds each external tool invocation.
	ToolTimeout time.Duration `yaml:"tool_timeout"`
}

const (
	// DefaultConfigFilename is the default filename for packaging settings.
	DefaultConfigFilename = "mcp-packager-settings.yaml"

	// DefaultProjectDir is where manifest lookups and tool invocations happen.
	DefaultProjectDir = "."

	// DefaultManifestFilename is the Python project manifest consulted for
	// artifact name and version metadata.
	DefaultManifestFilename = "pyproject.toml"

	// DefaultEntryPoint is the script handed to the freezer.
	DefaultEntryPoint = "mcp_server/start.py"

	// DefaultOutputName is the artifact name produced by the freeze step.
	DefaultOutputName = "mcp-server-office"

	// DefaultDistFolder receives frozen executables.
	DefaultDistFolder = "./dist"

	// DefaultBuildFolder is the freezer's intermediate workspace.
	DefaultBuildFolder = "./build"

	// DefaultToolTimeout bounds every external tool invocation.
	DefaultToolTimeout = 10 * time.Minute

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnsafeFolder is returned when the dist or build folder aliases the
	// project root, which the clean step would then delete.
	errUnsafeFolder = errors.New("dist and build folders must be dedicated subdirectories")
)

// DefaultInstallerCommand returns the dependency installation command.
func DefaultInstallerCommand() []string {
	return []string{"uv", "sync", "--frozen"}
}

// DefaultFreezerCommand returns the executable freezing command.
func DefaultFreezerCommand() []string {
	return []string{"uv", "run", "pyinstaller"}
}

// Default returns settings with every field set to its built-in default.
func Default() *Config {
	cfg := new(Config)
	// A zero config validates cleanly, defaults fill every field.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates essential
// fields. When no path is requested and the default settings file does not
// exist, the built-in defaults are returned so the workflow can run
// unconfigured.
func Load(path string) (*Config, error) {
	requested := path != ""
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !requested && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills missing fields with defaults and checks the result for
// values that would make the workflow destructive.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ProjectDir == "" {
		settings.ProjectDir = DefaultProjectDir
	}

	if settings.ManifestFile == "" {
		settings.ManifestFile = DefaultManifestFilename
	}

	if settings.EntryPoint == "" {
		settings.EntryPoint = DefaultEntryPoint
	}

	if settings.OutputName == "" {
		settings.OutputName = DefaultOutputName
	}

	if settings.DistFolder == "" {
		settings.DistFolder = DefaultDistFolder
	}

	if settings.BuildFolder == "" {
		settings.BuildFolder = DefaultBuildFolder
	}

	if len(settings.Installer) == 0 {
		settings.Installer = DefaultInstallerCommand()
	}

	if len(settings.Freezer) == 0 {
		settings.Freezer = DefaultFreezerCommand()
	}

	if settings.ToolTimeout <= 0 {
		settings.ToolTimeout = DefaultToolTimeout
	}

	for _, folder := range []string{settings.DistFolder, settings.BuildFolder} {
		if isProjectRoot(folder) {
			return fmt.Errorf("%w: %q", errUnsafeFolder, folder)
		}
	}

	return nil
}

// ManifestPath resolves the manifest location against the project directory.
func (c *Config) ManifestPath() string {
	return c.resolve(c.ManifestFile)
}

// DistPath resolves the dist folder against the project directory.
func (c *Config) DistPath() string {
	return c.resolve(c.DistFolder)
}

// BuildPath resolves the build folder against the project directory.
func (c *Config) BuildPath() string {
	return c.resolve(c.BuildFolder)
}

// resolve joins relative paths with the project directory.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(c.ProjectDir, path)
}

// isProjectRoot reports whether the folder would alias the project root itself.
func isProjectRoot(folder string) bool {
	cleaned := filepath.Clean(folder)

	return cleaned == "." || cleaned == string(filepath.Separator)
}
