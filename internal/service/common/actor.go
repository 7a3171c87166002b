//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"

	"github.com/oshokin/mcp-packager/internal/domain/artifact"
)

// DetectActor gathers host and user information for the artifact audit trail.
func DetectActor() (*artifact.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &artifact.Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
