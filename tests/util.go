package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/student"
	"github.com/trezcool/mahudhurio/core/user"
	logsvc "github.com/trezcool/mahudhurio/services/logger"
	"github.com/trezcool/mahudhurio/storage/database"
)

// Conf returns the configuration of a sqlite3 database file private to the test.
func Conf(t *testing.T) *core.Config {
	t.Helper()
	return &core.Config{
		Env:     "TEST",
		AppName: "Mahudhurio",
		Debug:   true,
		Database: core.DatabaseConfig{
			Engine: core.EngineSQLite,
			Path:   filepath.Join(t.TempDir(), "attendance.db"),
		},
		Auth: core.AuthConfig{PasswordScheme: core.PasswordSchemePlain},
	}
}

// PrepareDB opens a migrated database that is closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	return OpenDB(t, Conf(t))
}

// OpenDB opens and migrates the database of `conf`. It is closed when the test ends.
func OpenDB(t *testing.T, conf *core.Config) *sqlx.DB {
	t.Helper()
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(db, &logsvc.NopLogger{}); err != nil {
		t.Fatalf("database.Migrate() failed: %v", err)
	}
	return db
}

func CreateUser(t *testing.T, repo user.Repository, uname, pwd string) user.User {
	t.Helper()
	usr := user.User{Username: uname}
	if err := usr.SetPassword(pwd, &user.PlainScheme{}); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateStudent(t *testing.T, repo student.Repository, rollNo, name string) student.Student {
	t.Helper()
	st, err := repo.CreateStudent(context.Background(), student.Student{RollNo: rollNo, Name: name})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}

// CreateEmployee inserts an employee directly, there being no employee service.
func CreateEmployee(t *testing.T, db *sqlx.DB, empID, name string) int64 {
	t.Helper()
	var id int64
	q := db.Rebind(`INSERT INTO employees (emp_id, name) VALUES (?, ?) RETURNING id`)
	if err := db.Get(&id, q, empID, name); err != nil {
		t.Fatalf("CreateEmployee() failed: %v", err)
	}
	return id
}
