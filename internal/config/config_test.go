package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.NoError(t, err)
	assert.Equal(t, ":8090", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.EnrichmentTimeout())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DBPath)
}

func TestLoad_ReadsYAMLOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkeep.yml")
	content := "db_path: /tmp/test.db\nlisten_addr: \":9000\"\nenrichment_timeout_seconds: 5\nlog_level: debug\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.EnrichmentTimeout())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MalformedYAMLIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkeep.yml")
	assert.NoError(t, os.WriteFile(path, []byte("listen_addr: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
