package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInit_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("PAGE_SIZE", "")

	c := Init()

	assert.Equal(t, 10, c.PageSize)
	assert.Equal(t, "/auth/login/", c.LoginURL)
	assert.Equal(t, 20*time.Second, c.IndexCacheTTL)
	assert.Same(t, c, Get())
}

func TestInit_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("INDEX_CACHE_TTL", "1m")
	t.Setenv("DB_DRIVER", "postgres")

	c := Init()

	assert.Equal(t, 25, c.PageSize)
	assert.Equal(t, time.Minute, c.IndexCacheTTL)
	assert.Equal(t, "postgres", c.DBDriver)
}

func TestParseDuration_Fallback(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseDuration("garbage", 5*time.Second))
	assert.Equal(t, 3*time.Second, parseDuration("3s", time.Second))
}
