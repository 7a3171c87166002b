package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mcp-packager/internal/service/cleaner"
	"github.com/oshokin/mcp-packager/internal/service/packager"
)

// TestCleaner_RemovesPackagingLeftovers packages a project, then verifies the
// clean step removes every leftover and stays quiet when run again.
func TestCleaner_RemovesPackagingLeftovers(t *testing.T) {
	project := newPackagingProject(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, packager.Run(ctx, &packager.Options{ConfigPath: project.configPath}))

	// A spec file left behind by an interrupted freeze.
	require.NoError(t, os.WriteFile(filepath.Join(project.dir, "leftover.spec"), nil, 0o600))

	options := &cleaner.Options{ConfigPath: project.configPath}
	require.NoError(t, cleaner.Run(ctx, options))

	for _, folder := range []string{project.config.DistPath(), project.config.BuildPath()} {
		_, err := os.Stat(folder)
		require.ErrorIs(t, err, os.ErrNotExist)
	}

	specs, err := filepath.Glob(filepath.Join(project.dir, "*.spec"))
	require.NoError(t, err)
	require.Empty(t, specs)

	// Cleaning an already clean project succeeds as well.
	require.NoError(t, cleaner.Run(ctx, options))
}
