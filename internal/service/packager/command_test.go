package packager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mcp-packager/internal/config"
	domain "github.com/oshokin/mcp-packager/internal/domain/artifact"
	"github.com/oshokin/mcp-packager/internal/domain/platform"
	repo "github.com/oshokin/mcp-packager/internal/repository/description"
	"github.com/oshokin/mcp-packager/internal/runner"
)

// fakeRunner records invocations and returns scripted results per tool name.
type fakeRunner struct {
	// commands records every invocation in order.
	commands []runner.Command
	// failWith maps a tool name to the error its invocation returns.
	failWith map[string]error
	// onRun simulates tool side effects such as artifact creation.
	onRun func(command runner.Command) error
}

// Run records the command and replays the scripted behavior.
func (f *fakeRunner) Run(_ context.Context, command runner.Command) error {
	f.commands = append(f.commands, command)

	if err, ok := f.failWith[command.Name]; ok {
		return err
	}

	if f.onRun != nil {
		return f.onRun(command)
	}

	return nil
}

// newTestConfig returns settings rooted in a temporary project directory
// with distinct tool names so tests can tell installer and freezer apart.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.ProjectDir = t.TempDir()
	cfg.Installer = []string{"install-tool"}
	cfg.Freezer = []string{"freeze-tool"}

	return cfg
}

// supportedHost returns a host triple that passes the platform gate.
func supportedHost() platform.Host {
	return platform.Host{
		OS:           "Windows_NT",
		Architecture: "AMD64",
	}
}

// TestWorkflow_GateBlocksFreeze verifies an unsupported host aborts the run
// after install and before the freezer is invoked.
func TestWorkflow_GateBlocksFreeze(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	fake := new(fakeRunner)

	host := platform.Host{
		OS:           "Windows_NT",
		Architecture: "ARM64",
	}

	w := newWorkflow(cfg, host, fake, repo.NewDistRepository(cfg.DistPath()))

	err := w.run(context.Background())
	require.ErrorIs(t, err, platform.ErrUnsupported)
	require.Contains(t, err.Error(), "Windows_NT ARM64")

	// Install ran, freeze did not.
	require.Len(t, fake.commands, 1)
	require.Equal(t, "install-tool", fake.commands[0].Name)
}

// TestWorkflow_InstallFailureAbortsBeforeGate verifies installer failures
// surface before the gate is consulted.
func TestWorkflow_InstallFailureAbortsBeforeGate(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	errInstall := errors.New("dependency resolution failed")
	fake := &fakeRunner{
		failWith: map[string]error{"install-tool": errInstall},
	}

	host := platform.Host{
		OS:           "Darwin",
		Architecture: "arm64",
	}

	w := newWorkflow(cfg, host, fake, repo.NewDistRepository(cfg.DistPath()))

	err := w.run(context.Background())
	require.ErrorIs(t, err, errInstall)
	require.NotErrorIs(t, err, platform.ErrUnsupported)
	require.Len(t, fake.commands, 1)
}

// TestWorkflow_FreezeFailurePropagates surfaces the freezer error to the caller.
func TestWorkflow_FreezeFailurePropagates(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	errFreeze := errors.New("exit status 2")
	fake := &fakeRunner{
		failWith: map[string]error{"freeze-tool": errFreeze},
	}

	w := newWorkflow(cfg, supportedHost(), fake, repo.NewDistRepository(cfg.DistPath()))

	err := w.run(context.Background())
	require.ErrorIs(t, err, errFreeze)
	require.Len(t, fake.commands, 2)
}

// TestWorkflow_Success runs the full workflow with a fake freezer producing
// the artifact and checks every side effect.
func TestWorkflow_Success(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)

	// Manifest supplies the artifact version.
	manifestContents := "[project]\nname = \"mcp-server-office\"\nversion = \"0.1.0\"\n"
	require.NoError(t, os.WriteFile(cfg.ManifestPath(), []byte(manifestContents), 0o600))

	// A spec file left over by the freezer.
	specFile := filepath.Join(cfg.ProjectDir, "mcp-server-office.spec")
	require.NoError(t, os.WriteFile(specFile, []byte("# generated"), 0o600))

	artifactName := domain.ExecutableName(cfg.OutputName)
	fake := &fakeRunner{
		onRun: func(command runner.Command) error {
			if command.Name != "freeze-tool" {
				return nil
			}

			if err := os.MkdirAll(cfg.DistPath(), 0o755); err != nil {
				return err
			}

			return os.WriteFile(filepath.Join(cfg.DistPath(), artifactName), []byte("frozen bytes"), 0o755)
		},
	}

	w := newWorkflow(cfg, supportedHost(), fake, repo.NewDistRepository(cfg.DistPath()))
	require.NoError(t, w.run(context.Background()))

	// Tools ran in the project directory with the computed freeze arguments.
	require.Len(t, fake.commands, 2)
	require.Equal(t, cfg.ProjectDir, fake.commands[0].Dir)
	require.Equal(t, "freeze-tool", fake.commands[1].Name)
	require.Equal(t,
		[]string{"--onefile", "--name", cfg.OutputName, "--distpath", cfg.DistFolder, cfg.EntryPoint},
		fake.commands[1].Args)

	// No spec files remain.
	matches, err := filepath.Glob(filepath.Join(cfg.ProjectDir, "*.spec"))
	require.NoError(t, err)
	require.Empty(t, matches)

	// Description written and consistent with the artifact.
	desc, err := repo.NewDistRepository(cfg.DistPath()).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, artifactName, desc.Name)
	require.Equal(t, "0.1.0", desc.Version)
	require.NotEmpty(t, desc.BuildID)
	require.NotNil(t, desc.BuiltBy)
	require.NoError(t, desc.Verify(filepath.Join(cfg.DistPath(), artifactName)))
}

// TestWorkflow_ArtifactMissing fails when the freezer produced nothing.
func TestWorkflow_ArtifactMissing(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	fake := new(fakeRunner)
	w := newWorkflow(cfg, supportedHost(), fake, repo.NewDistRepository(cfg.DistPath()))

	err := w.run(context.Background())
	require.ErrorIs(t, err, errArtifactMissing)
}

// TestWorkflow_UnknownVersionWithoutManifest stamps the fallback version.
func TestWorkflow_UnknownVersionWithoutManifest(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	require.NoError(t, os.MkdirAll(cfg.DistPath(), 0o755))

	artifactName := domain.ExecutableName(cfg.OutputName)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DistPath(), artifactName), []byte("frozen"), 0o755))

	fake := new(fakeRunner)
	w := newWorkflow(cfg, supportedHost(), fake, repo.NewDistRepository(cfg.DistPath()))
	require.NoError(t, w.run(context.Background()))

	desc, err := repo.NewDistRepository(cfg.DistPath()).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.UnknownVersion, desc.Version)
}
