package artifact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestActorClone verifies that Clone returns a deep copy and handles nil safely.
func TestActorClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Actor)(nil).Clone())

	a := &Actor{
		Hostname: "build-host",
		Username: "o.shokin",
	}

	b := a.Clone()

	require.Equal(t, a, b)
	require.NotSame(t, a, b)
}

// TestActorString verifies the user@host rendering and the nil fallback.
func TestActorString(t *testing.T) {
	t.Parallel()

	a := &Actor{
		Hostname: "build-host",
		Username: "o.shokin",
	}

	require.Equal(t, "o.shokin@build-host", a.String())
	require.Equal(t, "<unknown>", (*Actor)(nil).String())
}

// TestNewDescription verifies that fresh descriptions are stamped with
// a build id and creation time, and fall back to UnknownVersion.
func TestNewDescription(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC()
	d := NewDescription("mcp-server-office", "1.2.3")

	require.Equal(t, "mcp-server-office", d.Name)
	require.Equal(t, "1.2.3", d.Version)
	require.NotEmpty(t, d.BuildID)
	require.False(t, d.CreatedAt.Before(before))

	other := NewDescription("mcp-server-office", "1.2.3")
	require.NotEqual(t, d.BuildID, other.BuildID)

	unversioned := NewDescription("mcp-server-office", "")
	require.Equal(t, UnknownVersion, unversioned.Version)
}

// TestDescriptionClone verifies that Clone copies fields and deep-copies BuiltBy.
func TestDescriptionClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Description)(nil).Clone())

	d := NewDescription("mcp-server-office", "1.2.3")
	d.Checksum = "c2hhLTUxMg=="
	d.BuiltBy = &Actor{
		Hostname: "build-host",
		Username: "o.shokin",
	}

	c := d.Clone()
	require.Equal(t, d, c)
	require.NotSame(t, d, c)

	// Ensure actor pointer is cloned.
	require.NotSame(t, d.BuiltBy, c.BuiltBy)
}
