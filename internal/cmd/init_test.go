package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adamancini/foxport/internal/config"
)

func TestRunInit_CreatesFoxfile(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "Foxfile")

	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("")

	err := runInit(stdin, &stdout, &stderr, outputPath, false)
	if err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		t.Errorf("Foxfile was not created at %s", outputPath)
	}

	// The starter file must itself be a loadable Foxfile
	foxfile, err := config.Load(outputPath)
	if err != nil {
		t.Fatalf("starter Foxfile does not load: %v", err)
	}
	if foxfile.Version != 1 {
		t.Errorf("starter Foxfile version = %d, want 1", foxfile.Version)
	}

	// Verify output message
	if !strings.Contains(stdout.String(), "Created") {
		t.Errorf("stdout missing 'Created' message")
	}
	if !strings.Contains(stdout.String(), "Next steps:") {
		t.Errorf("stdout missing 'Next steps' guidance")
	}
}

func TestRunInit_ExistingFile_Abort(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "Foxfile")

	if err := os.WriteFile(outputPath, []byte("existing content"), 0o644); err != nil {
		t.Fatalf("failed to create existing file: %v", err)
	}

	var stdout, stderr bytes.Buffer
	// Simulate user pressing 'n' to abort
	stdin := strings.NewReader("n\n")

	err := runInit(stdin, &stdout, &stderr, outputPath, false)
	if err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read Foxfile: %v", err)
	}
	if string(content) != "existing content" {
		t.Errorf("existing file was modified when user aborted")
	}

	if !strings.Contains(stdout.String(), "Aborted") {
		t.Errorf("stdout missing 'Aborted' message")
	}
}

func TestRunInit_ExistingFile_Overwrite(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "Foxfile")

	if err := os.WriteFile(outputPath, []byte("existing content"), 0o644); err != nil {
		t.Fatalf("failed to create existing file: %v", err)
	}

	var stdout, stderr bytes.Buffer
	// Simulate user pressing 'y' to overwrite
	stdin := strings.NewReader("y\n")

	err := runInit(stdin, &stdout, &stderr, outputPath, false)
	if err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read Foxfile: %v", err)
	}
	if string(content) == "existing content" {
		t.Errorf("existing file was not overwritten when user confirmed")
	}
	if !strings.Contains(string(content), "version: 1") {
		t.Errorf("overwritten file missing version field")
	}
}

func TestRunInit_ForceFlag(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "Foxfile")

	if err := os.WriteFile(outputPath, []byte("existing content"), 0o644); err != nil {
		t.Fatalf("failed to create existing file: %v", err)
	}

	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("")

	// Use force flag - should not prompt
	err := runInit(stdin, &stdout, &stderr, outputPath, true)
	if err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read Foxfile: %v", err)
	}
	if string(content) == "existing content" {
		t.Errorf("existing file was not overwritten with force flag")
	}
}

func TestRunInit_CreatesParentDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "nested", "dir", "Foxfile")

	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("")

	err := runInit(stdin, &stdout, &stderr, outputPath, false)
	if err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		t.Errorf("Foxfile was not created in nested directory")
	}
}

func TestExpandHomePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home directory: %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"~/.foxport/Foxfile", filepath.Join(home, ".foxport/Foxfile")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"~", "~"}, // Should not expand without trailing slash
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := expandHomePath(tt.input)
			if got != tt.want {
				t.Errorf("expandHomePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
