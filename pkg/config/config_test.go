package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, ">\t", cfg.Prompt)
	assert.Equal(t, []rune{' ', '\n'}, cfg.SkipRunes())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "console.yaml", `
prompt: "$ "
write_delay: 10ms
clear_delay: 5ms
skip_set: " \n\t"
guard:
  redis_addr: localhost:6379
  ttl: 30s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Equal(t, 10*time.Millisecond, cfg.WriteDelay)
	assert.Equal(t, 5*time.Millisecond, cfg.ClearDelay)
	assert.Equal(t, []rune{' ', '\n', '\t'}, cfg.SkipRunes())
	assert.Equal(t, "localhost:6379", cfg.Guard.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.Guard.TTL)
	assert.Equal(t, "hackterm:", cfg.Guard.Prefix, "unset fields keep their defaults")
	assert.Equal(t, domain.DefaultVariableTemplate, cfg.VariableTemplate)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "console.json", `{"prompt": "# ", "write_delay": "1ms"}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "# ", cfg.Prompt)
	assert.Equal(t, time.Millisecond, cfg.WriteDelay)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "write_delay: -5ms\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	path = writeFile(t, "broken.yaml", "prompt: [unterminated\n")
	_, err = Load(path)
	assert.Error(t, err)
}
