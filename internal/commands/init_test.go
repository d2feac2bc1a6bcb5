package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/scotia/internal/categories"
	"github.com/cleared-dev/scotia/internal/config"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runScotia(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized scotia workspace at "+dir)

	info, err := os.Stat(filepath.Join(dir, "import"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(filepath.Join(dir, "import", ".gitkeep"))
	require.NoError(t, err)
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runScotia(t, "init", dir)
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "scotia.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "categories.yaml", cfg.Categories.Path)
	assert.Equal(t, "scotia", cfg.Ledger.Format)
	assert.NoError(t, cfg.Validate())
}

func TestInit_Categories(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runScotia(t, "init", dir)
	require.NoError(t, err)

	table, err := categories.Load(filepath.Join(dir, "categories.yaml"))
	require.NoError(t, err)
	assert.Equal(t, categories.Default().Names(), table.Names())
}

func TestInit_RefusesExisting(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runScotia(t, "init", dir)
	require.NoError(t, err)

	_, stderr, err := runScotia(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, stderr, "already exists")
}

func TestInit_DefaultsToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, dir, nil, "init")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "scotia.yaml"))
	assert.NoError(t, err)
}

func TestInit_WorkspaceIsUsed(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runScotia(t, "init", dir)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "categories.yaml"), `categories:
  - name: payroll
    keywords: [PAYROLL]
`)
	copyFixture(t, "scotia_chequing.csv", filepath.Join(dir, "import", "jan.csv"))

	out, _, err := run(t, dir, nil, "-c", "--dir", "import")
	require.NoError(t, err)
	assertInOrder(t, out, "\tjan.csv\n", "payroll: 2500.00\n", "other: -1352.57\n")
}

func TestInit_Git(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "SCOTIA_LOG_LEVEL=debug\n")

	out, _, err := runScotia(t, "init", "--git", dir)
	require.NoError(t, err)
	assert.Regexp(t, `Initialized scotia workspace at .+ \([0-9a-f]+\)`, out)

	ls := exec.Command("git", "ls-files")
	ls.Dir = dir
	files, err := ls.Output()
	require.NoError(t, err)
	assert.Contains(t, string(files), "scotia.yaml")
	assert.Contains(t, string(files), "categories.yaml")
	assert.Contains(t, string(files), "import/.gitkeep")
	assert.NotContains(t, string(files), ".env\n")
}
