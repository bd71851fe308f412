package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/user"
	logsvc "github.com/trezcool/mahudhurio/services/logger"
	"github.com/trezcool/mahudhurio/storage/database"
)

func main() {
	std := log.New(os.Stderr, "ATTENDANCE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig(".")
	if err != nil {
		std.Fatalf("loading config: %v", err)
	}

	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	if err = database.Migrate(db, logger); err != nil {
		_ = db.Close()
		logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
	}

	// start CLI
	cli, err := setUpCommandLine(conf, db, logger, os.Stdout)
	if err != nil {
		_ = db.Close()
		logger.Fatal(fmt.Sprintf("setting up: %v", err), err)
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			cli.printError(err)
		}
		os.Exit(1)
	}
}

// setUpCommandLine wires the services as configured by conf.
func setUpCommandLine(conf *core.Config, db *sqlx.DB, logger core.Logger, out io.Writer) (*commandLine, error) {
	scheme, err := user.NewPasswordScheme(conf.Auth.PasswordScheme)
	if err != nil {
		return nil, err
	}
	return newCommandLine(db, scheme, logger, out), nil
}
