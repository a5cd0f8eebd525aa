// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WritePadded writes body to dir/name and returns the path. Trailing spaces
// pad the file to at least minSize bytes; JSON decoders ignore them.
func WritePadded(t testing.TB, dir, name, body string, minSize int) string {
	t.Helper()
	if pad := minSize - len(body); pad > 0 {
		body += strings.Repeat(" ", pad)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
