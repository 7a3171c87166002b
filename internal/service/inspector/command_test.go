package inspector

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mcp-packager/internal/config"
	domain "github.com/oshokin/mcp-packager/internal/domain/artifact"
	repo "github.com/oshokin/mcp-packager/internal/repository/description"
)

const samplePyproject = `[project]
name = "mcp-server-office"
version = "0.1.0"
requires-python = ">=3.11"
dependencies = ["mcp>=1.2.1"]

[project.scripts]
mcp-server-office = "mcp_server.start:main"

[dependency-groups]
dev = ["pytest>=8.3.4"]

[tool.uv.sources]
mcp-extensions = { path = "../mcp-extensions", editable = true }

[tool.pytest.ini_options]
asyncio_mode = "auto"
`

// TestRun_PrintsSummary renders the manifest fields the workflow cares about.
func TestRun_PrintsSummary(t *testing.T) {
	t.Parallel()

	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "pyproject.toml"), []byte(samplePyproject), 0o600))

	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), &Options{
		ProjectDir: projectDir,
		Out:        &out,
	}))

	summary := out.String()
	require.Contains(t, summary, "Project: mcp-server-office 0.1.0")
	require.Contains(t, summary, "Requires Python: >=3.11")
	require.Contains(t, summary, "Dependencies: 1 runtime, 1 dev")
	require.Contains(t, summary, "Console scripts: mcp-server-office")
	require.Contains(t, summary, "Editable dependencies: mcp-extensions")
	require.Contains(t, summary, "Pytest asyncio mode: auto")
	require.NotContains(t, summary, "Last artifact")
}

// TestRun_IncludesArtifact appends the artifact line once dist is packaged.
func TestRun_IncludesArtifact(t *testing.T) {
	t.Parallel()

	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "pyproject.toml"), []byte(samplePyproject), 0o600))

	cfg := config.Default()
	cfg.ProjectDir = projectDir
	require.NoError(t, os.MkdirAll(cfg.DistPath(), 0o755))

	desc := domain.NewDescription("mcp-server-office", "0.1.0")
	require.NoError(t, repo.NewDistRepository(cfg.DistPath()).Save(context.Background(), desc))

	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), &Options{
		ProjectDir: projectDir,
		Out:        &out,
	}))

	require.Contains(t, out.String(), "Last artifact: mcp-server-office (version 0.1.0")
}

// TestRun_MissingManifest fails when the project has no manifest.
func TestRun_MissingManifest(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ProjectDir: t.TempDir(),
		Out:        &out,
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}
