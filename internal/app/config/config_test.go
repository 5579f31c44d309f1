package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
ServicePort = 9090

[DB]
Driver = "MySQL"
Host = "db"
Port = 3306
User = "shop"
Password = "pw"
Name = "catalog"

[Admin]
Username = "admin"
Password = "secret"

[JWT]
Token = "file-secret"

[Storage]
Driver = "minio"

[Storage.MinIO]
Endpoint = "minio:9000"
Bucket = "images"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		envDBHost, envDBPort, envDBUser, envDBPass, envDBName, envDBDriver,
		envAdminUser, envAdminPass, envSecret,
		envRedisHost, envRedisPort, envRedisUser, envRedisPass,
		envMinIOEndpoint, envMinIOAccess, envMinIOSecret,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.ServiceHost)
	assert.Equal(t, 9090, cfg.ServicePort)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.Equal(t, "images", cfg.Storage.MinIO.Bucket)
	assert.Equal(t, "Asia/Kolkata", cfg.Shop.Location)
	assert.Equal(t, "Online", cfg.Shop.DefaultPayment)
	assert.Equal(t, "file-secret", cfg.JWT.Token)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, jwt.SigningMethodHS256, cfg.JWT.SigningMethod)
	assert.False(t, cfg.Redis.Enabled())
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(envDBHost, "pg.internal")
	t.Setenv(envDBPort, "6543")
	t.Setenv(envAdminPass, "from-env")
	t.Setenv(envSecret, "env-secret")
	t.Setenv(envRedisHost, "cache")

	cfg, err := LoadFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "from-env", cfg.Admin.Password)
	assert.Equal(t, "env-secret", cfg.JWT.Token)
	assert.True(t, cfg.Redis.Enabled())
}

func TestBadPortOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(envDBPort, "five")

	_, err := LoadFile(writeConfig(t, sampleConfig))
	assert.Error(t, err)
}

func TestMissingSecrets(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(writeConfig(t, "[JWT]\nToken = \"x\"\n"))
	assert.ErrorContains(t, err, "admin credentials")

	_, err = LoadFile(writeConfig(t, "[Admin]\nUsername = \"a\"\nPassword = \"b\"\n"))
	assert.ErrorContains(t, err, "session secret")
}
