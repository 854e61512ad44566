package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "pollinator.db")
	t.Setenv("POLLINATOR_CONFIG", "")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("JWT_SECRET", "cli-secret")
	return dbPath
}

func TestCalculateFixture(t *testing.T) {
	setupEnv(t)

	out := execute(t, "--fixture", "calculate")
	assert.Contains(t, out, "Pollinator abundance calculation completed in")
	assert.Contains(t, out, "result_values")

	out = execute(t, "--fixture", "calculate", "--json")
	assert.Contains(t, out, `"ratio_x": 0.2`)
	assert.Contains(t, out, `"PA_mean"`)
}

func TestSeedThenCalculateFromDatabase(t *testing.T) {
	dbPath := setupEnv(t)

	out := execute(t, "seed")
	assert.Contains(t, out, "Seeded "+dbPath)
	assert.Contains(t, out, "4 conservation areas, 3 regions of interest and 5 rasters")
	_, err := os.Stat(dbPath)
	require.NoError(t, err)

	out = execute(t, "migrate", "version")
	assert.Contains(t, out, "version 1 (dirty: false)")

	out = execute(t, "calculate", "--json", "--ca", "1", "--roi", "2")
	assert.Contains(t, out, `"ratio_x": 0.4`)
}

func TestProfileWritesCPUProfile(t *testing.T) {
	setupEnv(t)
	profile := filepath.Join(t.TempDir(), "cpu.prof")

	out := execute(t, "--fixture", "profile", "-n", "2", "--cpuprofile", profile)
	assert.Equal(t, 2, strings.Count(out, "Iteration "))
	assert.Contains(t, out, "Average execution time")
	assert.Contains(t, out, "Standard deviation")

	info, err := os.Stat(profile)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestToken(t *testing.T) {
	setupEnv(t)

	out := strings.TrimSpace(execute(t, "token", "--subject", "ci"))
	assert.Equal(t, 2, strings.Count(out, "."), "compact JWS has three parts")
}
