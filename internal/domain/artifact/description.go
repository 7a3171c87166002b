package artifact

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DescriptionFilename is the name of the artifact description stored
// next to the produced executable inside the dist folder.
const DescriptionFilename = "mcp-packager-artifact.yaml"

// UnknownVersion is recorded when the packaged project has no readable manifest.
const UnknownVersion = "unknown"

// Actor identifies who produced an artifact.
type Actor struct {
	// Hostname is the machine name where the artifact was built.
	Hostname string `yaml:"hostname"`
	// Username is the system user who ran the packaging workflow.
	Username string `yaml:"username"`
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders the actor as user@host for logs and summaries.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return fmt.Sprintf("%s@%s", a.Username, a.Hostname)
}

// Description records a produced artifact so later steps can verify and deploy it.
type Description struct {
	// Name is the artifact filename inside the dist folder.
	Name string `yaml:"name"`
	// Version is the packaged project version.
	Version string `yaml:"version"`
	// BuildID uniquely identifies the packaging run that produced the artifact.
	BuildID string `yaml:"build_id"`
	// Checksum is the base64-encoded SHA-512 checksum of the artifact file.
	Checksum string `yaml:"checksum"`
	// CreatedAt is when the artifact was produced.
	CreatedAt time.Time `yaml:"created_at"`
	// BuiltBy identifies the user and host that produced the artifact.
	BuiltBy *Actor `yaml:"built_by,omitempty"`
}

// NewDescription returns a Description stamped with a fresh build id and creation time.
func NewDescription(name, version string) *Description {
	if version == "" {
		version = UnknownVersion
	}

	return &Description{
		Name:      name,
		Version:   version,
		BuildID:   uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// Clone returns a copy of the description to avoid leaking internal references.
func (d *Description) Clone() *Description {
	if d == nil {
		return nil
	}

	cloned := *d
	cloned.BuiltBy = d.BuiltBy.Clone()

	return &cloned
}
