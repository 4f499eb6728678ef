package strings

import (
	"testing"
)

func TestPlural(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{0, "errors"},
		{1, "error"},
		{2, "errors"},
	}

	for _, test := range tests {
		result := Pluralize("error", "errors", test.count)
		if result != test.expected {
			t.Errorf("Pluralize(%d) = %q, expected %q", test.count, result, test.expected)
		}
	}
}

func TestCount(t *testing.T) {
	if got := Count(1, "file", "files"); got != "1 file" {
		t.Errorf("Expected '1 file', got %q", got)
	}
	if got := Count(3, "file", "files"); got != "3 files" {
		t.Errorf("Expected '3 files', got %q", got)
	}
}
