package user

import (
	"github.com/trezcool/mahudhurio/core"
)

type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"` // encoded by the configured PasswordScheme
}

func (u *User) SetPassword(pwd string, scheme PasswordScheme) error {
	encoded, err := scheme.Encode(pwd)
	if err != nil {
		return err
	}
	u.Password = encoded
	return nil
}

func (u *User) CheckPassword(pwd string, scheme PasswordScheme) error {
	if !scheme.Matches(u.Password, pwd) {
		return core.ErrInvalidCredentials
	}
	return nil
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

func (nu *NewUser) Validate() error {
	nu.Username = core.CleanString(nu.Username)
	return core.ValidateStruct(nu)
}
