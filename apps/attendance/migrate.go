package main

import (
	"github.com/trezcool/mahudhurio/storage/database"
)

var runMigrationFunc = database.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	return runMigrationFunc(cli.db, cli.log, args[0], args[1:]...)
}
