package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"MEALPLAN_DATA_DIR", "MEALPLAN_STORAGE", "MEALPLAN_LOG_LEVEL", "MEALPLAN_THEME"} {
		t.Setenv(k, "")
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--data-dir", dir,
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestStatus_Fresh(t *testing.T) {
	out, err := run(t, t.TempDir(), "status")
	require.NoError(t, err)

	assert.Contains(t, out, "Weekly Meal Plan (Feb. 24-28th)")
	assert.Contains(t, out, "Day 1: 0/4 done")
	assert.Contains(t, out, "Day 4: 0/5 done")
	assert.Contains(t, out, "Meals: 0/17 done")
	assert.Contains(t, out, "Shopping: 0/60 checked")
}

func TestStatus_ReadsSavedState(t *testing.T) {
	dir := t.TempDir()
	saved := `{"day1-breakfast":true,"day4-dessert":true}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oaklandFreshMealStatus.json"), []byte(saved), 0644))

	out, err := run(t, dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Day 1: 1/4 done")
	assert.Contains(t, out, "Day 4: 1/5 done")
	assert.Contains(t, out, "Meals: 2/17 done")
}

func TestReset_ClearsProgress(t *testing.T) {
	for _, kind := range []string{"file", "sqlite"} {
		t.Run(kind, func(t *testing.T) {
			dir := t.TempDir()
			_, err := run(t, dir, "--storage", kind, "status")
			require.NoError(t, err)

			a, err := openApp(&options{configPath: filepath.Join(dir, "config.yaml"), dataDir: dir, storage: kind})
			require.NoError(t, err)
			a.store.ToggleMeal("day2-lunch")
			a.store.ToggleItem("2-avocados")
			a.Close()

			out, err := run(t, dir, "--storage", kind, "status")
			require.NoError(t, err)
			assert.Contains(t, out, "Meals: 1/17 done")
			assert.Contains(t, out, "Shopping: 1/60 checked")

			out, err = run(t, dir, "--storage", kind, "reset")
			require.NoError(t, err)
			assert.Contains(t, out, "Progress cleared")

			out, err = run(t, dir, "--storage", kind, "status")
			require.NoError(t, err)
			assert.Contains(t, out, "Meals: 0/17 done")
			assert.Contains(t, out, "Shopping: 0/60 checked")
		})
	}
}

func TestExport_Text(t *testing.T) {
	out, err := run(t, t.TempDir(), "export", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "## Produce")
	assert.Contains(t, out, "- [ ] 2 organic avocados (For Day 1 Breakfast & Day 3 Lunch)")
}

func TestExport_XLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shopping.xlsx")

	out, err := run(t, dir, "export", "--format", "xlsx", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Shopping")
	require.NoError(t, err)
	assert.Len(t, rows, 61)
}

func TestExport_BadArgs(t *testing.T) {
	_, err := run(t, t.TempDir(), "export", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, t.TempDir(), "export", "--format", "xlsx")
	assert.ErrorContains(t, err, "--out is required")
}

func TestInvalidStorage(t *testing.T) {
	_, err := run(t, t.TempDir(), "--storage", "redis", "status")
	assert.ErrorContains(t, err, "unknown storage")
}
