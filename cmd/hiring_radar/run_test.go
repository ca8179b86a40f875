package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCommand_MissingInput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run")
	cmd.Env = envWithout("DATABASE_URL")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --listings or a database")
}

func TestRunCommand_BadConfig(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "run", "--config", "/nonexistent/config.json").CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed to load config")
}
