package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// No .env file in a fresh temp dir; everything comes from defaults.
	conf, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.ServerPort)
	assert.Equal(t, "tasks.db", conf.DBPath)
	assert.Equal(t, "logs/taskstore.log", conf.LogPath)
	assert.Equal(t, "development", conf.Environment)
}
