package core

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Database engines
const (
	EngineSQLite   = "sqlite3"
	EnginePostgres = "postgres"
)

// Password schemes
const (
	PasswordSchemePlain  = "plain"
	PasswordSchemeBcrypt = "bcrypt"
)

type (
	DatabaseConfig struct {
		Engine     string `mapstructure:"engine"`
		Path       string `mapstructure:"path"` // sqlite3 only
		Host       string `mapstructure:"host"`
		Port       int    `mapstructure:"port"`
		Name       string `mapstructure:"name"`
		User       string `mapstructure:"user"`
		Password   string `mapstructure:"password"`
		DisableTLS bool   `mapstructure:"disableTLS"`
	}

	AuthConfig struct {
		PasswordScheme string `mapstructure:"passwordScheme"`
	}

	Config struct {
		Env          string         `mapstructure:"-"`
		AppName      string         `mapstructure:"appName"`
		Debug        bool           `mapstructure:"debug"`
		Build        string         `mapstructure:"build"`
		RollbarToken string         `mapstructure:"rollbarToken"`
		Database     DatabaseConfig `mapstructure:"database"`
		Auth         AuthConfig     `mapstructure:"auth"`
	}
)

// Address returns the host:port of a networked database engine.
func (dc DatabaseConfig) Address() string {
	return net.JoinHostPort(dc.Host, strconv.Itoa(dc.Port))
}

// NewConfig loads the configuration of the current environment.
// ENV selects the environment (DEV by default) and is used as the prefix of
// overriding environment variables, eg. DEV_DATABASE_PATH for database.path.
// If dir/.env.<env> exists, it is loaded first.
func NewConfig(dir string) (*Config, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("appName", "Mahudhurio")
	conf.SetDefault("debug", false)
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("database.engine", EngineSQLite)
	conf.SetDefault("database.path", "attendance.db")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", 5432)
	conf.SetDefault("database.name", "attendance")
	conf.SetDefault("database.user", "")
	conf.SetDefault("database.password", "")
	conf.SetDefault("database.disableTLS", false)
	conf.SetDefault("auth.passwordScheme", PasswordSchemePlain)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "DEV" || env == "TEST" {
		conf.SetDefault("debug", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if dir != "" {
		dotEnvPath := filepath.Join(dir, ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
		}
	}
	conf.AutomaticEnv()

	var c Config
	if err := conf.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	c.Env = env

	switch c.Database.Engine {
	case EngineSQLite, EnginePostgres: // pass
	default:
		return nil, errors.Errorf("unsupported database engine %q", c.Database.Engine)
	}
	switch c.Auth.PasswordScheme {
	case PasswordSchemePlain, PasswordSchemeBcrypt: // pass
	default:
		return nil, errors.Errorf("unsupported password scheme %q", c.Auth.PasswordScheme)
	}
	return &c, nil
}
