package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/user"
)

var errPasswordMismatch = core.NewValidationError(core.ErrInvalidInput, core.FieldError{Field: "password", Error: "passwords do not match"})

func (cli *commandLine) signup(args []string) error {
	cmd := cli.newFlagSet("signup")
	uname := cmd.String("username", "", "The new account's username. The password will be prompted next.")
	if err := cli.parse(cmd, args); err != nil {
		return err
	}
	if core.CleanString(*uname) == "" {
		cmd.Usage()
		return errHelp
	}

	pwd, err := cli.readPassword("Enter password:")
	if err != nil {
		return err
	}
	if pwd == "" {
		cmd.Usage()
		return errHelp
	}
	confirm, err := cli.readPassword("Confirm password:")
	if err != nil {
		return err
	}
	if pwd != confirm {
		return errPasswordMismatch
	}

	usr, err := cli.usrSvc.Register(context.Background(), user.NewUser{Username: *uname, Password: pwd})
	if err != nil {
		return errors.Wrap(err, "signing up")
	}
	cli.printSuccess("Account %q created.", usr.Username)
	return nil
}
