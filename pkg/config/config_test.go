package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Defaults ───

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 720, cfg.JWT.Expiration)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	// Sin REDIS_ADDR el caché de reportes queda desactivado
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 30, cfg.Redis.TTLSeconds)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DB_HOST", "db.interna")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "secreto-de-prueba")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.interna", cfg.DB.Host)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "secreto-de-prueba", cfg.JWT.Secret)
}

// ─── DSN ───

func TestDSN_EscapaCaracteresEspeciales(t *testing.T) {
	db := DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/w:rd",
		DBName:   "mumi_pos",
		SSLMode:  "require",
	}
	dsn := db.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fw%3Ard")
	assert.Contains(t, dsn, "sslmode=require")
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	db := DBConfig{
		DatabaseURL: "postgresql://u:p@host:5432/db?sslmode=require",
		Host:        "ignorado",
	}
	assert.Equal(t, db.DatabaseURL, db.ConnectionString())
}
