package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Project mirrors the [project] table of a pyproject manifest.
type Project struct {
	// Name is the distribution name of the packaged project.
	Name string `toml:"name"`
	// Version is the project version recorded in artifact descriptions.
	Version string `toml:"version"`
	// Description is the human-readable project summary.
	Description string `toml:"description"`
	// RequiresPython is the interpreter constraint declared by the project.
	RequiresPython string `toml:"requires-python"`
	// Dependencies are the runtime requirement specifiers.
	Dependencies []string `toml:"dependencies"`
	// Scripts maps console script names to their entry points.
	Scripts map[string]string `toml:"scripts"`
}

// Source mirrors a [tool.uv.sources] entry for a locally sourced dependency.
type Source struct {
	// Path is the local filesystem location of the dependency.
	Path string `toml:"path"`
	// Editable marks the dependency as installed in editable mode.
	Editable bool `toml:"editable"`
}

// UV mirrors the [tool.uv] table.
type UV struct {
	// Package marks the project as buildable rather than a bare script tree.
	Package bool `toml:"package"`
	// Sources lists dependencies resolved from local paths instead of an index.
	Sources map[string]Source `toml:"sources"`
}

// IniOptions mirrors the [tool.pytest.ini_options] test-runner settings.
type IniOptions struct {
	// AsyncioMode is the pytest-asyncio execution mode.
	AsyncioMode string `toml:"asyncio_mode"`
}

// Pytest mirrors the [tool.pytest] table.
type Pytest struct {
	IniOptions IniOptions `toml:"ini_options"`
}

// Tool mirrors the [tool] table for the entries the workflow consumes.
type Tool struct {
	UV     UV     `toml:"uv"`
	Pytest Pytest `toml:"pytest"`
}

// Manifest is the subset of a pyproject file the packaging workflow reads.
type Manifest struct {
	Project Project `toml:"project"`
	// DependencyGroups holds PEP 735 groups, conventionally including "dev".
	DependencyGroups map[string][]string `toml:"dependency-groups"`
	Tool             Tool                `toml:"tool"`
}

// errProjectNameRequired is returned when the manifest lacks a project name.
var errProjectNameRequired = errors.New("project name must be provided")

// Load reads and validates the manifest at the provided path.
func Load(path string) (*Manifest, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	if err := Validate(&m); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks the manifest for the fields the workflow depends on.
func Validate(m *Manifest) error {
	if m.Project.Name == "" {
		return errProjectNameRequired
	}

	return nil
}

// ConsoleScripts returns the declared console script names in sorted order.
func (m *Manifest) ConsoleScripts() []string {
	names := make([]string, 0, len(m.Project.Scripts))
	for name := range m.Project.Scripts {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// EditableDependencies returns names of local sources installed in editable mode.
func (m *Manifest) EditableDependencies() []string {
	names := make([]string, 0, len(m.Tool.UV.Sources))

	for name, source := range m.Tool.UV.Sources {
		if source.Editable {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// DevDependencies returns the "dev" dependency group.
func (m *Manifest) DevDependencies() []string {
	return m.DependencyGroups["dev"]
}
