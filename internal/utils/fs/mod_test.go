package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsValidFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.kes")
	if err := os.WriteFile(file, []byte("fn main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !IsValidFile(file) {
		t.Error("Expected a regular file to be valid")
	}
	if IsValidFile(dir) {
		t.Error("Expected a directory not to be a valid file")
	}
	if !IsDir(dir) || IsDir(file) {
		t.Error("IsDir gave the wrong answer")
	}
	if IsValidFile(filepath.Join(dir, "missing.kes")) {
		t.Error("Expected a missing file to be invalid")
	}
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.kes", true},
		{"dir/MAIN.KES", true},
		{"main.go", false},
		{"kes", false},
	}
	for _, tt := range tests {
		if got := HasExtension(tt.path, ".kes"); got != tt.want {
			t.Errorf("HasExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
