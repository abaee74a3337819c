package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"1d":  24 * time.Hour,
		"7d":  7 * 24 * time.Hour,
		"12h": 12 * time.Hour,
		"90m": 90 * time.Minute,
	}

	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "d", "-1d", "abc", "1x"} {
		_, err := ParseDuration(in)
		assert.Error(t, err, in)
	}
}

func TestNewConfigReadsPrefixedEnv(t *testing.T) {
	t.Setenv("UNIT_POSTGRES_HOST", "db.internal")
	t.Setenv("UNIT_JWT_SECRET", "s3cret")
	t.Setenv("UNIT_EXPIRES_IN", "2d")
	t.Setenv("PORT", "9090")

	cfg, err := NewConfig("unit")
	require.NoError(t, err)

	assert.Equal(t, "UNIT", cfg.Env)
	assert.Equal(t, "db.internal", cfg.Get("POSTGRES_HOST"))
	assert.Equal(t, "s3cret", cfg.Get("JWT_SECRET"))
	assert.Equal(t, "9090", cfg.Get("PORT"))
	assert.Equal(t, "30s", cfg.Get("STATS_CACHE_TTL"))

	expiresIn, err := cfg.GetDuration("EXPIRES_IN")
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, expiresIn)
}

func TestGetDurationReportsKey(t *testing.T) {
	cfg := &Config{Key: map[string]string{"EXPIRES_IN": "soon"}}

	_, err := cfg.GetDuration("EXPIRES_IN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXPIRES_IN")
}
