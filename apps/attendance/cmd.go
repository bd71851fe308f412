package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/gommon/color"
	"golang.org/x/term"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/report"
	"github.com/trezcool/mahudhurio/core/student"
	"github.com/trezcool/mahudhurio/core/user"
	sqlxrepos "github.com/trezcool/mahudhurio/storage/database/sqlx"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db       *sqlx.DB
	log      core.Logger
	out      io.Writer
	clr      *color.Color
	usrSvc   user.Service
	stSvc    student.Service
	attSvc   attendance.Service
	exporter report.Exporter
}

func newCommandLine(db *sqlx.DB, scheme user.PasswordScheme, logger core.Logger, out io.Writer) *commandLine {
	clr := color.New()
	clr.SetOutput(out)

	stSvc := student.NewService(sqlxrepos.NewStudentRepository(db), logger)
	attSvc := attendance.NewService(sqlxrepos.NewAttendanceRepository(db), stSvc, logger)
	return &commandLine{
		db:       db,
		log:      logger,
		out:      out,
		clr:      clr,
		usrSvc:   user.NewService(sqlxrepos.NewUserRepository(db), scheme, logger),
		stSvc:    stSvc,
		attSvc:   attSvc,
		exporter: report.NewExporter(attSvc, logger),
	}
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  signup -username USERNAME - create an account; the password is prompted twice")
	_, _ = fmt.Fprintln(cli.out, "  student add -username USERNAME -roll ROLL_NO -name NAME - add a student to the roster")
	_, _ = fmt.Fprintln(cli.out, "  student remove -username USERNAME -id ID - remove a student and its attendance")
	_, _ = fmt.Fprintln(cli.out, "  student list -username USERNAME - list the roster")
	_, _ = fmt.Fprintln(cli.out, "  mark -username USERNAME -date DATE ROLL_NO=STATUS... - record attendance (Present, Absent or Late)")
	_, _ = fmt.Fprintln(cli.out, "  records -username USERNAME [-date DATE] [-all] - show recorded attendance")
	_, _ = fmt.Fprintln(cli.out, "  export -username USERNAME -format csv|xlsx -out PATH [-date DATE] - export the attendance report")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a database migration command (up, down, status, version, ...)")
	_, _ = fmt.Fprintln(cli.out, "Every command but signup and migrate prompts for the user's password.")
}

func (cli *commandLine) printError(err error) {
	_, _ = fmt.Fprintf(cli.out, "\n%s %s\n", cli.clr.Red("error:"), err)
}

func (cli *commandLine) printSuccess(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(cli.out, cli.clr.Green(fmt.Sprintf(format, args...)))
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "signup":
		return cli.signup(args[2:])
	case "student":
		return cli.student(args[2:])
	case "mark":
		return cli.mark(args[2:])
	case "records":
		return cli.records(args[2:])
	case "export":
		return cli.export(args[2:])
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse parses args into fs. Usage has already been printed if it fails.
func (cli *commandLine) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) readPassword(prompt string) (string, error) {
	_, _ = fmt.Fprint(cli.out, prompt)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	_, _ = fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

// login prompts for the password of `username` and authenticates the user.
func (cli *commandLine) login(ctx context.Context, username string) (user.User, error) {
	pwd, err := cli.readPassword("Password:")
	if err != nil {
		return user.User{}, err
	}
	usr, err := cli.usrSvc.Authenticate(ctx, username, pwd)
	if err != nil {
		return user.User{}, err
	}
	cli.log.Debug("user logged in", usr)
	return usr, nil
}
