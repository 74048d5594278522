// Package testutil provides a standardized harness for end-to-end tests:
// it lays fixture files out in a temporary directory, runs the App against
// them and captures everything it logged and wrote.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/qstatic/qslice/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an end-to-end run.
type HarnessResult struct {
	Output string // logs plus anything rendered to the writer
	Err    error
	Dir    string // the fixture directory, for asserting on written files
}

// RunApp writes the fixture files into a fresh temp directory, anchors every
// relative path in cfg to it, then builds and runs the App. File names in
// the map may contain subdirectories.
func RunApp(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, writeFixture(path, content))
	}

	// Fill path defaults here so they anchor to the fixture directory
	// instead of the test process working directory.
	if cfg.OutPath == "" {
		cfg.OutPath = "slice.json"
	}
	if cfg.QDGOut == "" {
		cfg.QDGOut = "qdg.json"
	}
	if cfg.DOTOut == "" {
		cfg.DOTOut = "qdg.dot"
	}

	anchor(&cfg.IRPath, dir)
	anchor(&cfg.QueriesPath, dir)
	anchor(&cfg.OutPath, dir)
	anchor(&cfg.QDGOut, dir)
	anchor(&cfg.DOTOut, dir)

	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	validated, err := app.NewConfig(cfg)
	require.NoError(t, err, "harness config must validate")

	out := &SafeBuffer{}
	runErr := app.NewApp(out, validated).Run(context.Background())

	return &HarnessResult{
		Output: out.String(),
		Err:    runErr,
		Dir:    dir,
	}
}

func anchor(path *string, dir string) {
	if *path != "" && !filepath.IsAbs(*path) {
		*path = filepath.Join(dir, *path)
	}
}

func writeFixture(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
