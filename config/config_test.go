package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ronnmabunga/blogging-website-app-api-demo/config"
)

func validConfig() config.BaseConfig {
	return config.BaseConfig{
		Auth: config.Auth{
			SigningKey:      "secret",
			TokenExpiration: 72,
		},
		Persistence: config.Persistence{
			Driver:                "sqlite",
			Database:              "file::memory:?cache=shared",
			PingTimeoutExpression: "15s",
		},
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())

	missingKey := validConfig()
	missingKey.Auth.SigningKey = ""
	assert.Error(t, missingKey.Validate())

	badExpiration := validConfig()
	badExpiration.Auth.TokenExpiration = 0
	assert.Error(t, badExpiration.Validate())
}

func TestGetPingTimeout(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 15*time.Second, cfg.Persistence.GetPingTimeout())

	cfg.Persistence.PingTimeoutExpression = "nope"
	assert.Panics(t, func() {
		cfg.Persistence.GetPingTimeout()
	})
}

func TestGetDSN(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "file::memory:?cache=shared", cfg.Persistence.GetDSN())

	pg := config.Persistence{
		Driver:   "postgres",
		Server:   "postgres://localhost:5432",
		Database: "blog",
	}
	assert.Equal(t, "postgres://localhost:5432/blog", pg.GetDSN())
}
