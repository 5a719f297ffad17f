package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shouni/reflection-kit/pkg/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfig(), cfg.Reflection)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Fetch.CacheTTL)
	assert.False(t, cfg.Fetch.AllowPrivate)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.True(t, cfg.Output.Export)
	assert.False(t, cfg.Output.Legacy)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
reflection:
  height: 0.5
  opacity: 0.25
  css_class: mirrored
  max_width: 300
fetch:
  timeout: 5s
output:
  dir: /tmp/out
  legacy: true
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Reflection.Height)
	assert.Equal(t, 0.25, cfg.Reflection.Opacity)
	assert.Equal(t, "mirrored", cfg.Reflection.CSSClass)
	assert.Equal(t, 300, cfg.Reflection.MaxWidth)
	assert.Equal(t, -1, cfg.Reflection.MaxHeight)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "/tmp/out", cfg.Output.Dir)
	assert.True(t, cfg.Output.Legacy)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "reflection:\n  opacity: 0.25\n")
	t.Setenv("REFLECT_REFLECTION_OPACITY", "0.75")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.Reflection.Opacity)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("REFLECT_REFLECTION_HEIGHT", "0.4")

	fs := pflag.NewFlagSet("reflect", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--height=0.6", "--max-height=120", "--export=false"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Reflection.Height)
	assert.Equal(t, 120, cfg.Reflection.MaxHeight)
	assert.False(t, cfg.Output.Export)
	// 指定していないフラグは既定値のまま
	assert.Equal(t, 0.5, cfg.Reflection.Opacity)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("存在しない設定ファイル", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
		assert.Error(t, err)
	})

	t.Run("範囲外の不透明度は拒否する", func(t *testing.T) {
		path := writeConfig(t, "reflection:\n  opacity: 1.5\n")
		_, err := Load(path, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
	})
}
