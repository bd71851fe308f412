package user

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
)

var (
	// errors
	ErrNotFound       = errors.Wrap(core.ErrNotFound, "user")
	ErrUsernameExists = core.NewDuplicateKeyError("username", "a user with this username already exists")
)

type (
	Repository interface {
		// CreateUser fails with ErrUsernameExists if the username is taken.
		CreateUser(ctx context.Context, usr User) (User, error)
		// GetUserByUsername fails with ErrNotFound if there is no such user.
		GetUserByUsername(ctx context.Context, username string) (User, error)
	}

	Service interface {
		Register(ctx context.Context, nu NewUser) (User, error)
		Authenticate(ctx context.Context, username, pwd string) (User, error)
	}

	service struct {
		repo   Repository
		scheme PasswordScheme
		log    core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, scheme PasswordScheme, logger core.Logger) Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(scheme, "scheme"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	return &service{repo: repo, scheme: scheme, log: logger}
}

// Register creates a new account. The username must not be taken.
func (svc *service) Register(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}

	usr := User{Username: nu.Username}
	if err := usr.SetPassword(nu.Password, svc.scheme); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}
	svc.log.Info("user registered", usr)
	return usr, nil
}

// Authenticate checks that a user with the exact username exists and that pwd is its password.
func (svc *service) Authenticate(ctx context.Context, username, pwd string) (User, error) {
	usr, err := svc.repo.GetUserByUsername(ctx, core.CleanString(username))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return User{}, core.ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := usr.CheckPassword(pwd, svc.scheme); err != nil {
		return User{}, err
	}
	return usr, nil
}
