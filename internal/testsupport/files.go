package testsupport

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to dir/name, failing the test on error.
func WriteFile(t testing.TB, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// RandomPayload returns size bytes from a fixed-seed generator so tests stay
// deterministic across runs.
func RandomPayload(t testing.TB, size int, seed int64) []byte {
	t.Helper()
	payload := make([]byte, size)
	rand.New(rand.NewSource(seed)).Read(payload)
	return payload
}
