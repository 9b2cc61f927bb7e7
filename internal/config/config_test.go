package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "ironforge", cfg.Database.Name)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "lb", cfg.Equipment.DefaultUnit)
	assert.True(t, cfg.S3.UseSSL)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
database:
  driver: memory
jwt:
  secret: file-secret
  expiration: 30m
equipment:
  default_unit: kg
s3:
  bucket_name: media
  use_ssl: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, "kg", cfg.Equipment.DefaultUnit)
	assert.Equal(t, "media", cfg.S3.BucketName)
	assert.False(t, cfg.S3.UseSSL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("jwt:\n  secret: file-secret\n"), 0o600))
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_NAME", "from_env")
	t.Setenv("JWT_EXPIRATION", "2h")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "from_env", cfg.Database.Name)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("DATABASE_DRIVER", "postgres")
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "database.driver")
	})
	t.Run("unit", func(t *testing.T) {
		t.Setenv("EQUIPMENT_DEFAULT_UNIT", "stone")
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "equipment.default_unit")
	})
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))
	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
