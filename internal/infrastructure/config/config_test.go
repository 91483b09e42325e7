package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "poslite-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodySize)
	assert.Equal(t, "localhost", cfg.Mongo.Host)
	assert.Equal(t, 27017, cfg.Mongo.Port)
	assert.Equal(t, "poslite", cfg.Mongo.Database)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "info", cfg.Log.Level)

	// CORS origins stay empty until configured explicitly
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	assert.NotEmpty(t, cfg.HTTP.CORSAllowMethods)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		App:   AppConfig{Port: "9000"},
		Mongo: MongoConfig{Database: "custom"},
	}
	applyDefaults(cfg)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "custom", cfg.Mongo.Database)
}

func TestValidateProduction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) {},
			wantErr: "jwt.secret is required",
		},
		{
			name: "short jwt secret",
			mutate: func(c *Config) {
				c.JWT.Secret = "short"
			},
			wantErr: "at least 32 characters",
		},
		{
			name: "wildcard cors origin",
			mutate: func(c *Config) {
				c.JWT.Secret = "0123456789abcdef0123456789abcdef"
				c.HTTP.CORSAllowOrigins = []string{"*"}
			},
			wantErr: "cannot be '*'",
		},
		{
			name: "valid",
			mutate: func(c *Config) {
				c.JWT.Secret = "0123456789abcdef0123456789abcdef"
				c.HTTP.CORSAllowOrigins = []string{"https://app.example.com"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			cfg.App.Env = "production"
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateDevelopmentAllowsEmptySecret(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.NoError(t, cfg.validate())
}

func TestMongoURI(t *testing.T) {
	m := MongoConfig{Host: "db.internal", Port: 27017}
	assert.Equal(t, "mongodb://db.internal:27017", m.URI())

	m.User = "app"
	m.Password = "p@ss:word"
	uri := m.URI()
	assert.Contains(t, uri, "app:")
	assert.NotContains(t, uri, "p@ss:word") // credentials must be escaped

	m.ReplicaSet = "rs0"
	assert.Contains(t, m.URI(), "replicaSet=rs0")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("POS_MONGO_DATABASE", "envdb")
	t.Setenv("POS_APP_PORT", "7777")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "envdb", cfg.Mongo.Database)
	assert.Equal(t, "7777", cfg.App.Port)
}
