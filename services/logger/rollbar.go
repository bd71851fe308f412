package logsvc

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/user"
)

// RollbarLogger prints every message to std and, when enabled, reports it to Rollbar.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	host, _ := os.Hostname()
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l *RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// rollbarArgs builds the arguments of a Rollbar item: msg, then every error or
// extras map of args. The first user.User of args becomes the item's person.
func (l *RollbarLogger) rollbarArgs(msg string, args []interface{}) []interface{} {
	items := []interface{}{msg}
	var person *user.User
	for _, arg := range args {
		usr, ok := arg.(user.User)
		switch {
		case !ok:
			items = append(items, arg)
		case person == nil:
			person = &usr
		}
	}

	if person == nil {
		rollbar.ClearPerson()
	} else {
		rollbar.SetPerson(strconv.FormatInt(person.ID, 10), person.Username, "")
	}
	return items
}

func (l *RollbarLogger) log(level, msg string, args []interface{}) {
	rollbar.Log(level, l.rollbarArgs(msg, args)...)

	l.std.Printf("%s %s\n", strings.ToUpper(level), msg)
	for _, arg := range args {
		if usr, ok := arg.(user.User); ok {
			l.std.Printf("  user: %d %s\n", usr.ID, usr.Username)
		} else {
			l.std.Printf("  %+v\n", arg)
		}
	}
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) { l.log(rollbar.DEBUG, msg, args) }
func (l *RollbarLogger) Info(msg string, args ...interface{})  { l.log(rollbar.INFO, msg, args) }
func (l *RollbarLogger) Warn(msg string, args ...interface{})  { l.log(rollbar.WARN, msg, args) }
func (l *RollbarLogger) Error(msg string, args ...interface{}) { l.log(rollbar.ERR, msg, args) }

// Fatal reports msg, waits for the pending Rollbar items and exits.
func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.CRIT, msg, args)
	rollbar.Wait()
	os.Exit(1)
}
