package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestSaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")
	want := Defaults()
	want.Theme = "light"
	want.ItemHeight = 2
	want.Buffer = 5
	want.BatchSize = 25
	want.DBPath = "/tmp/inspections.db"
	want.Latency = 250 * time.Millisecond

	require.NoError(t, Save(dir, want))
	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("batch_size: 10\nframe_interval: 50ms\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, 50*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, Defaults().LoadMoreThreshold, cfg.LoadMoreThreshold)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("item_height: [not, a, number"), 0o644))

	cfg, err := Load(dir)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, Defaults(), cfg)
}

func TestNormalize(t *testing.T) {
	cfg := Config{
		ItemHeight:        0,
		Buffer:            -2,
		LoadMoreThreshold: 140,
		BatchSize:         -1,
		FrameInterval:     -time.Second,
		Latency:           -time.Second,
	}
	cfg.Normalize()

	d := Defaults()
	assert.Equal(t, d.Theme, cfg.Theme)
	assert.Equal(t, d.ItemHeight, cfg.ItemHeight)
	assert.Equal(t, 0, cfg.Buffer)
	assert.Equal(t, d.LoadMoreThreshold, cfg.LoadMoreThreshold)
	assert.Equal(t, d.BatchSize, cfg.BatchSize)
	assert.Equal(t, d.FrameInterval, cfg.FrameInterval)
	assert.Zero(t, cfg.Latency)
	assert.Equal(t, "info", cfg.LogLevel)
}
