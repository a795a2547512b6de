package ux

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathDefaults(t *testing.T) {
	defaults := &PathDefaults{Dir: "campaign"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"theater", defaults.TheaterFile(), filepath.Join("campaign", "theater.yaml")},
		{"ato", defaults.ATOFile(), filepath.Join("campaign", "ato.yaml")},
		{"env", defaults.EnvFile(), filepath.Join("campaign", ".env")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestPathDefaults_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	defaults := &PathDefaults{Dir: dir}

	if got := defaults.SettingsFile(); got != "" {
		t.Errorf("SettingsFile() = %q without a settings file, want empty", got)
	}

	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("saturation_waves: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := defaults.SettingsFile(); got != path {
		t.Errorf("SettingsFile() = %q, want %q", got, path)
	}
}

func TestValidateRequiredFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "theater.yaml")
	if err := os.WriteFile(existing, []byte("name: test\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := ValidateRequiredFile(existing, "Theater snapshot", "--theater"); err != nil {
		t.Errorf("ValidateRequiredFile() error = %v", err)
	}

	err := ValidateRequiredFile(filepath.Join(dir, "missing.yaml"), "Theater snapshot", "--theater")
	if err == nil {
		t.Fatal("ValidateRequiredFile() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "--theater") {
		t.Errorf("error %q does not name the flag", err)
	}
}
