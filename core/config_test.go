package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENV", "")

		conf, err := NewConfig("")
		require.NoError(t, err)
		assert.Equal(t, "DEV", conf.Env)
		assert.True(t, conf.Debug)
		assert.Equal(t, EngineSQLite, conf.Database.Engine)
		assert.Equal(t, "attendance.db", conf.Database.Path)
		assert.Equal(t, PasswordSchemePlain, conf.Auth.PasswordScheme)
		assert.Equal(t, "localhost:5432", conf.Database.Address())
	})

	t.Run("prefixed environment", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		t.Setenv("PROD_DATABASE_ENGINE", EnginePostgres)
		t.Setenv("PROD_DATABASE_HOST", "db")
		t.Setenv("PROD_DATABASE_PORT", "6543")
		t.Setenv("DEV_DATABASE_NAME", "ignored")

		conf, err := NewConfig("")
		require.NoError(t, err)
		assert.Equal(t, "PROD", conf.Env)
		assert.False(t, conf.Debug)
		assert.Equal(t, EnginePostgres, conf.Database.Engine)
		assert.Equal(t, "db:6543", conf.Database.Address())
		assert.Equal(t, "attendance", conf.Database.Name)
	})

	t.Run("dotenv file", func(t *testing.T) {
		t.Setenv("ENV", "qa")
		t.Cleanup(func() { _ = os.Unsetenv("QA_AUTH_PASSWORDSCHEME") })

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.qa"), []byte("QA_AUTH_PASSWORDSCHEME=bcrypt\n"), 0o600))

		conf, err := NewConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, PasswordSchemeBcrypt, conf.Auth.PasswordScheme)
	})

	t.Run("unsupported engine", func(t *testing.T) {
		t.Setenv("ENV", "TEST")
		t.Setenv("TEST_DATABASE_ENGINE", "mysql")

		_, err := NewConfig("")
		assert.EqualError(t, err, `unsupported database engine "mysql"`)
	})

	t.Run("unsupported password scheme", func(t *testing.T) {
		t.Setenv("ENV", "TEST")
		t.Setenv("TEST_AUTH_PASSWORDSCHEME", "md5")

		_, err := NewConfig("")
		assert.EqualError(t, err, `unsupported password scheme "md5"`)
	})
}
