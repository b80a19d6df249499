package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvWithDefault(t *testing.T) {
	t.Setenv("FOO", "")
	assert.Equal(t, "bar", GetEnv("FOO", "bar"))
	t.Setenv("FOO", "baz")
	assert.Equal(t, "baz", GetEnv("FOO", "bar"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("NUM", "")
	assert.Equal(t, 42, GetEnvInt("NUM", 42))
	t.Setenv("NUM", "100")
	assert.Equal(t, 100, GetEnvInt("NUM", 42))
	t.Setenv("NUM", "notint")
	assert.Equal(t, 7, GetEnvInt("NUM", 7))
}

func TestGetLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"WARN":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"":      logrus.InfoLevel,
	}
	for in, want := range cases {
		t.Setenv("LOG_LEVEL", in)
		assert.Equal(t, want, GetLogLevel(), "LOG_LEVEL=%q", in)
	}
}

func TestParseFeedDefaults(t *testing.T) {
	for _, k := range []string{"FEED_URL", "FEED_SUMMARY", "CACHE_PATH", "LOAD_POLICY", "RANK_BY", "UPDATE_FREQUENCY"} {
		t.Setenv(k, "")
	}
	cfg := ParseFeed()
	assert.Equal(t, DefaultFeedURL, cfg.FeedURL)
	assert.Equal(t, DefaultCachePath, cfg.CachePath)
	assert.Equal(t, "prefer-fresh", cfg.LoadPolicy)
	assert.Equal(t, "magnitude", cfg.RankBy)
	assert.Equal(t, 300*time.Second, cfg.UpdateFrequency)
}

func TestLoadEnvOverridesProcessEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RANK_BY=intensity\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("RANK_BY", "magnitude")
	LoadEnv(nil)
	assert.Equal(t, "intensity", ParseFeed().RankBy)
}

func TestLoadEnvLocalFileWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FEED_SUMMARY=2.5_day\nCACHE_PATH=a.json\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("FEED_SUMMARY=4.5_week\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("FEED_SUMMARY", "")
	t.Setenv("CACHE_PATH", "")
	LoadEnv(logrus.New())
	cfg := ParseFeed()
	assert.Equal(t, "4.5_week", cfg.Summary)
	assert.Equal(t, "a.json", cfg.CachePath)
}
