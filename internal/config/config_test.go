package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TODO_CONFIG", "TODO_DATA_DIR", "TODO_LOG_LEVEL", "VISUAL", "EDITOR", "NO_COLOR"} {
		t.Setenv(k, "")
	}
}

func TestLoadFileDefaults(t *testing.T) {
	clearEnv(t)
	dataDir := filepath.Join(t.TempDir(), "data")
	t.Setenv("TODO_DATA_DIR", dataDir)

	cfg, err := LoadFile("")
	require.NoError(t, err)
	require.Equal(t, dataDir, cfg.DataDir)
	require.Equal(t, filepath.Join(dataDir, DataFileName), cfg.DataFile())
	require.Equal(t, DefaultEditor, cfg.Editor)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
	require.True(t, cfg.ColorEnabled())
	require.Empty(t, cfg.Path)

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestLoadFileYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "tasks")
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"data_dir: "+dataDir+"\neditor: nano -w\nlog_level: debug\ncolor: false\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, dataDir, cfg.DataDir)
	require.Equal(t, "nano -w", cfg.Editor)
	require.Equal(t, "debug", cfg.LogLevel)
	require.False(t, cfg.ColorEnabled())
	require.Equal(t, path, cfg.Path)
}

func TestLoadFileTOML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "tasks")
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"data_dir = \""+filepath.ToSlash(dataDir)+"\"\neditor = \"hx\"\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Clean(dataDir), filepath.Clean(cfg.DataDir))
	require.Equal(t, "hx", cfg.Editor)
}

func TestLoadFileInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODO_DATA_DIR", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor: [unterminated\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: "+filepath.Join(dir, "fromfile")+"\nlog_level: info\n"), 0o644))

	override := filepath.Join(dir, "fromenv")
	t.Setenv("TODO_DATA_DIR", override)
	t.Setenv("TODO_LOG_LEVEL", "error")
	t.Setenv("EDITOR", "emacs")
	t.Setenv("NO_COLOR", "1")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, override, cfg.DataDir)
	require.Equal(t, "error", cfg.LogLevel)
	require.Equal(t, "emacs", cfg.Editor)
	require.False(t, cfg.ColorEnabled())
}

func TestVisualWinsOverEditor(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODO_DATA_DIR", t.TempDir())
	t.Setenv("VISUAL", "code --wait")
	t.Setenv("EDITOR", "nano")

	cfg, err := LoadFile("")
	require.NoError(t, err)
	require.Equal(t, "code --wait", cfg.Editor)
}

func TestConfigEditorWinsOverEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODO_DATA_DIR", t.TempDir())
	t.Setenv("EDITOR", "nano")
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("editor: micro\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "micro", cfg.Editor)
}

func TestLoadUsesPlatformDataDir(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG layout only")
	}
	clearEnv(t)
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "share"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "share", AppName), cfg.DataDir)
	require.Empty(t, cfg.Path)
}

func TestLoadFindsConfigInUserDir(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG layout only")
	}
	clearEnv(t)
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "share"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	cfgDir := filepath.Join(base, "config", AppName)
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("editor = \"kak\"\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "kak", cfg.Editor)
	require.Equal(t, filepath.Join(cfgDir, "config.toml"), cfg.Path)
}

func TestDataDirNotCreatable(t *testing.T) {
	clearEnv(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	t.Setenv("TODO_DATA_DIR", filepath.Join(blocker, "data"))

	_, err := LoadFile("")
	require.True(t, errors.Is(err, ErrDataDir), "expected ErrDataDir, got %v", err)
}

func TestLoadFileMissingPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODO_DATA_DIR", t.TempDir())
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Empty(t, cfg.Path)
	require.Equal(t, DefaultEditor, cfg.Editor)
}
