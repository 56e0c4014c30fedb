package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiereJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_OpcionesDeBaseDeDatos(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("DB_FORCE_IPV4", "true")
	t.Setenv("DB_MAX_CONN_LIFETIME", "15m")
	t.Setenv("DB_CONNECT_TIMEOUT", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, 15*time.Minute, cfg.DB.MaxConnLifetime)
	assert.Equal(t, 3*time.Second, cfg.DB.ConnectTimeout)
	assert.Equal(t, 30*time.Minute, cfg.DB.MaxConnIdleTime)
}

func TestLoad_ForceIPv4DesactivadoPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.DB.ForceIPv4)
}
