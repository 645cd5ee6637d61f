package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 10*time.Second, cfg.Scheduler.SolverTimeLimit)
	assert.Equal(t, 15*time.Minute, cfg.Scheduler.CacheTTL)
	assert.Equal(t, 2.0, cfg.Scheduler.RateLimitRPS)
	assert.Equal(t, 5, cfg.Scheduler.RateLimitBurst)
	assert.False(t, cfg.JWT.Enabled)
	assert.Equal(t, "@hourly", cfg.Exports.CleanupSchedule)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SCHEDULER_SOLVER_TIME_LIMIT", "2500ms")
	v.Set("SCHEDULER_CACHE_TTL", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	v.Set("AUTH_ENABLED", "true")

	cfg := fromViper(v)
	assert.Equal(t, 2500*time.Millisecond, cfg.Scheduler.SolverTimeLimit)
	assert.Equal(t, 15*time.Minute, cfg.Scheduler.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.JWT.Enabled)
}
