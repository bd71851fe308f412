package database

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/fs"
)

// Open opens the configured database and waits for it to be ready.
func Open(conf *core.Config) (*sqlx.DB, error) {
	var dsn string
	switch conf.Database.Engine {
	case core.EngineSQLite:
		dsn = sqliteDSN(conf.Database.Path)
		if dir := filepath.Dir(conf.Database.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrap(err, "creating database directory")
			}
		}
	case core.EnginePostgres:
		dsn = postgresDSN(conf)
	default:
		return nil, errors.Errorf("unsupported database engine %q", conf.Database.Engine)
	}

	db, err := sqlx.Open(conf.Database.Engine, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if conf.Database.Engine == core.EngineSQLite {
		// a single writer; every operation holds the only connection until it is done
		db.SetMaxOpenConns(1)
	}
	if err = ping(db, conf.Database.Engine); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func sqliteDSN(path string) string {
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

func postgresDSN(conf *core.Config) string {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.Database.Address(),
		Path:     conf.Database.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
// A local sqlite3 file is either ready or broken, so it is only tried once.
func ping(db *sqlx.DB, engine string) error {
	var err error
	maxAttempts := 30
	if engine == core.EngineSQLite {
		maxAttempts = 1
	}
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		if attempts < maxAttempts {
			time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migrate creates or upgrades the schema to the latest version.
// It is safe to call on every start: an up to date schema is left as is.
func Migrate(db *sqlx.DB, logger core.Logger) error {
	if err := Run(db, logger, "up"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// Run runs a goose command (up, down, status, version, redo, reset, up-to, down-to, fix)
// with the migrations embedded for the database's dialect.
func Run(db *sqlx.DB, logger core.Logger, command string, args ...string) error {
	goose.SetBaseFS(appfs.FS)
	goose.SetLogger(gooseLogger{log: logger})
	if err := goose.SetDialect(db.DriverName()); err != nil {
		return errors.Wrap(err, "setting migrations dialect")
	}
	return goose.Run(command, db.DB, appfs.MigrationsDir(db.DriverName()), args...)
}

// gooseLogger writes goose's output to a core.Logger.
type gooseLogger struct {
	log core.Logger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
