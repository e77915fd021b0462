package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/dashbuild/dashbuild/internal/doctor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorCommand_Text(t *testing.T) {
	opts, _ := testWorkspace(t, testConfig)

	var buf bytes.Buffer
	require.NoError(t, doctorCommand(&buf, opts.ConfigPath, ""))

	out := buf.String()
	assert.Contains(t, out, "dashbuild diagnostic report")
	assert.Contains(t, out, "CONFIG")
	assert.Contains(t, out, "HISTORY")
	assert.Contains(t, out, "WIDGETS")
	assert.Contains(t, out, "✓ Config file: dashbuild.yaml")
	// rating has no value in the latest snapshot; uptime was never sampled
	assert.Contains(t, out, "! No trend yet for: rating")
	assert.Contains(t, out, "! Not in history: uptime")
	assert.Contains(t, out, "2 issues found")
}

func TestDoctorCommand_Failure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, doctorCommand(&buf, filepath.Join(t.TempDir(), "missing.yaml"), ""))

	out := buf.String()
	assert.Contains(t, out, "✗ Specified config file not found")
	assert.Contains(t, out, "failures")
}

func TestDoctorCommand_JSON(t *testing.T) {
	withMachineMode(t)
	opts, _ := testWorkspace(t, testConfig)

	var buf bytes.Buffer
	require.NoError(t, doctorCommand(&buf, opts.ConfigPath, ""))

	var env struct {
		Success bool         `json:"success"`
		Data    DoctorOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.False(t, env.Data.Summary.AllClear)
	assert.Equal(t, 2, env.Data.Summary.Warn)
	assert.Equal(t, 0, env.Data.Summary.Fail)

	require.Len(t, env.Data.Categories, 3)
	assert.Equal(t, "CONFIG", env.Data.Categories[0].Name)
	assert.Len(t, env.Data.Categories[1].Results, 4)
	assert.Contains(t, buf.String(), `"status": "warn"`)
}

func TestGroupResults(t *testing.T) {
	checks := doctor.NewChecks(&doctor.Env{})
	results := make([]doctor.CheckResult, len(checks))
	for i, c := range checks {
		results[i] = doctor.CheckResult{Name: c.Name()}
	}

	groups := groupResults(checks, results)
	require.Len(t, groups, 3)
	assert.Equal(t, "config_file", groups[0].Results[0].Name)
	assert.Equal(t, "widget_keys", groups[2].Results[0].Name)
}
