package configutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string `json:"name"`
	Delay int    `json:"delay"`
	Inner struct {
		File string `json:"file"`
	} `json:"inner"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0666)
	require.NoError(t, err)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		name: "catalog",
		delay: 300,
		inner: { file: "catalog.db" },
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ inner: { file: "local.db" } }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "catalog", cfg.Name)
	require.Equal(t, 300, cfg.Delay)
	require.Equal(t, "local.db", cfg.Inner.File)
}

func TestReadConfigIntoKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{ name: "override" }`)

	cfg := testConfig{Name: "default", Delay: 300}
	err := ReadConfigInto(filepath.Join(dir, "config.json5"), &cfg)
	require.NoError(t, err)
	require.Equal(t, "override", cfg.Name)
	require.Equal(t, 300, cfg.Delay)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "dir/config.local.json5", localPath("dir/config.json5"))
	require.Equal(t, "telemetry.local.json5", localPath("telemetry.json5"))
}
