package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"menu-planner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCLI_TodayAndCatalog(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MENU_DB_PATH", filepath.Join(dir, "menu.db"))
	t.Setenv("MENU_TIMEZONE", "UTC")
	t.Setenv("MENU_LOG_LEVEL", "error")
	t.Setenv("MENU_ADDR", "")
	cfgFile := filepath.Join(dir, "missing.yaml")

	list := filepath.Join(dir, "meat.txt")
	require.NoError(t, os.WriteFile(list, []byte("Vịt quay\nvịt quay\n\n"), 0o600))

	out := runCLI(t, "", "--config", cfgFile, "catalog", "set", "meat", list)
	assert.Contains(t, out, "Món thịt: Vịt quay")

	out = runCLI(t, "Cam\nBưởi\n", "--config", cfgFile, "catalog", "set", "fruit", "-")
	assert.Contains(t, out, "Hoa quả: Cam, Bưởi")

	first := runCLI(t, "", "--config", cfgFile, "today")
	assert.Contains(t, first, "Bữa trưa")
	assert.Contains(t, first, "Vịt quay")

	second := runCLI(t, "", "--config", cfgFile, "today")
	assert.Equal(t, first, second)

	out = runCLI(t, "", "--config", cfgFile, "refresh", "dinner")
	assert.Contains(t, out, "Bữa tối")

	out = runCLI(t, "", "--config", cfgFile, "catalog", "show")
	assert.Contains(t, out, "Hoa quả (fruit)")
	assert.Contains(t, out, "  Bưởi")
}

func TestPrintEntry(t *testing.T) {
	var out bytes.Buffer
	entry := models.HistoryEntry{
		Date: "2024-01-03",
		Menu: models.DayMenu{
			Lunch:  models.Meal{models.CategoryMeat: "Gà"},
			Dinner: models.Meal{},
		},
	}

	require.NoError(t, printEntry(&out, entry))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "2024-01-03\n"))
	assert.Contains(t, text, "Gà")
	assert.Contains(t, text, "—")
	assert.Contains(t, text, "Bữa tối")
}
