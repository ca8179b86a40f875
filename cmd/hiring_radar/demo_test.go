package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	report := filepath.Join(tmpDir, "report.json")
	listings := filepath.Join(tmpDir, "listings.json")

	output, err := exec.Command(binaryPath, "demo", "--out", report, "--write-listings", listings).CombinedOutput()
	require.NoError(t, err, string(output))

	content, err := os.ReadFile(report)
	require.NoError(t, err)
	var r map[string]any
	require.NoError(t, json.Unmarshal(content, &r))
	assert.NotEmpty(t, r["run_id"])
	assert.Contains(t, r, "insights")
	assert.Contains(t, r, "recommendations")

	// The generated listings validate and feed straight back into run
	output, err = exec.Command(binaryPath, "validate", "--schema", "listings", listings).CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "valid")

	cmd := exec.Command(binaryPath, "run", "--listings", listings, "--out", filepath.Join(tmpDir, "run.json"))
	cmd.Env = envWithout("DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS")
	output, err = cmd.CombinedOutput()
	require.NoError(t, err, string(output))
}

func TestDemoCommand_ReportValidates(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	report := filepath.Join(tmpDir, "report.json")
	output, err := exec.Command(binaryPath, "demo", "--seed", "7", "--out", report).CombinedOutput()
	require.NoError(t, err, string(output))

	output, err = exec.Command(binaryPath, "validate", "--schema", "report", report).CombinedOutput()
	require.NoError(t, err, string(output))
}
