package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/dashbuild/dashbuild/internal/logger"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

const testHistory = `history:
  - date: 2026-01-01
    metrics: {coverage: 80, defects: 5, rating: 4}
  - date: 2026-01-02
    metrics: {coverage: 82, defects: 4, rating: 3}
  - date: 2026-01-03
    metrics: {coverage: 85, defects: 6}
`

const testConfig = `version: 1
title: Team health
history: metrics.yaml
output:
  color: never
widgets:
  - key: coverage
    title: Coverage
    suffix: "%"
  - key: defects
    inverse: true
  - key: uptime
`

// testWorkspace writes a config and history into a temp dir.
func testWorkspace(t *testing.T, configContent string) (WorkspaceOptions, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metrics.yaml"), []byte(testHistory), 0644))
	configPath := filepath.Join(dir, "dashbuild.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	return WorkspaceOptions{ConfigPath: configPath, Log: logger.NewBufferLogger()}, dir
}

// withMachineMode turns on --json for the rest of the test.
func withMachineMode(t *testing.T) {
	t.Helper()
	old := machineMode
	machineMode = true
	t.Cleanup(func() { machineMode = old })
}

func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
