package theater

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/commander/internal/errors"
)

// Repository defines the interface for loading and saving theater snapshots.
type Repository interface {
	// Load reads a Snapshot from a file
	Load(path string) (*Snapshot, error)

	// Save writes a Snapshot to a file
	Save(snapshot *Snapshot, path string) error
}

// FileRepository implements Repository for YAML files
type FileRepository struct{}

// NewFileRepository creates a new file-based snapshot repository
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Load reads and validates a Snapshot from a YAML file
func (r *FileRepository) Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewTheaterNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read theater snapshot", err)
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.NewFileUnmarshalError(path, "YAML", err)
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// Save writes a Snapshot to a YAML file
func (r *FileRepository) Save(snapshot *Snapshot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, "create directory", err)
	}

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal theater snapshot", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write theater snapshot", err)
	}

	return nil
}

var defaultRepository = NewFileRepository()

// LoadSnapshot reads a Snapshot using the default repository.
func LoadSnapshot(path string) (*Snapshot, error) {
	return defaultRepository.Load(path)
}

// SaveSnapshot writes a Snapshot using the default repository.
func SaveSnapshot(snapshot *Snapshot, path string) error {
	return defaultRepository.Save(snapshot, path)
}
