package ux

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathDefaults resolves the files commands read and write when no flag
// names them.
type PathDefaults struct {
	Dir string
}

// NewPathDefaults looks for files in the working directory.
func NewPathDefaults() *PathDefaults {
	return &PathDefaults{Dir: "."}
}

// TheaterFile is the theater snapshot.
func (pd *PathDefaults) TheaterFile() string {
	return filepath.Join(pd.Dir, "theater.yaml")
}

// SettingsFile returns the settings file, or "" when there is none so the
// defaults apply.
func (pd *PathDefaults) SettingsFile() string {
	path := filepath.Join(pd.Dir, "settings.yaml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// ATOFile is where planned orders are written and read back for scheduling.
func (pd *PathDefaults) ATOFile() string {
	return filepath.Join(pd.Dir, "ato.yaml")
}

// EnvFile is the dotenv file holding settings overrides.
func (pd *PathDefaults) EnvFile() string {
	return filepath.Join(pd.Dir, ".env")
}

// ValidateRequiredFile checks that a required input exists.
func ValidateRequiredFile(path string, fileType string, flag string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%s not found at: %s\n\nPass it with %s", fileType, path, flag)
	} else if err != nil {
		return fmt.Errorf("error accessing %s: %w", path, err)
	}
	return nil
}
