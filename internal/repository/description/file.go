package description

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/mcp-packager/internal/config"
	domain "github.com/oshokin/mcp-packager/internal/domain/artifact"
)

// Repository defines persistence operations for the artifact description.
type Repository interface {
	Load(ctx context.Context) (*domain.Description, error)
	Save(ctx context.Context, description *domain.Description) error
}

// FileRepository persists the artifact description to a YAML file on disk,
// conventionally next to the produced executable inside the dist folder.
type FileRepository struct {
	// path is the filesystem location of the YAML description file.
	path string
	// mu protects concurrent access to the description file.
	mu sync.Mutex
}

// ErrNotFound is returned when the description file does not exist yet.
var ErrNotFound = errors.New("artifact description not found")

// NewFileRepository creates a repository that reads/writes YAML at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// NewDistRepository creates a repository rooted at the dist folder using the
// standard description filename.
func NewDistRepository(distFolder string) *FileRepository {
	return NewFileRepository(filepath.Join(distFolder, domain.DescriptionFilename))
}

// Load reads the description from disk.
func (r *FileRepository) Load(_ context.Context) (*domain.Description, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read description file: %w", err)
	}

	var d domain.Description
	if err = yaml.Unmarshal(contents, &d); err != nil {
		return nil, fmt.Errorf("decode description file: %w", err)
	}

	return &d, nil
}

// Save writes the description to disk using YAML representation.
func (r *FileRepository) Save(_ context.Context, description *domain.Description) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(description)
	if err != nil {
		return fmt.Errorf("encode description: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write description file: %w", err)
	}

	return nil
}
