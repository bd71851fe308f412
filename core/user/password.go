package user

import (
	"crypto/subtle"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/mahudhurio/core"
)

// PasswordScheme encodes passwords before they are stored and matches login
// attempts against stored values.
type PasswordScheme interface {
	Encode(pwd string) (string, error)
	Matches(encoded, pwd string) bool
}

// NewPasswordScheme returns the scheme named by core.Config.Auth.PasswordScheme.
func NewPasswordScheme(name string) (PasswordScheme, error) {
	switch name {
	case core.PasswordSchemePlain, "":
		return &PlainScheme{}, nil
	case core.PasswordSchemeBcrypt:
		return &BcryptScheme{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, errors.Errorf("unsupported password scheme %q", name)
	}
}

// PlainScheme stores passwords as given and compares them exactly.
// It is kept for compatibility with existing attendance databases; prefer BcryptScheme.
type PlainScheme struct{}

var _ PasswordScheme = (*PlainScheme)(nil)

func (*PlainScheme) Encode(pwd string) (string, error) { return pwd, nil }

func (*PlainScheme) Matches(encoded, pwd string) bool {
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(pwd)) == 1
}

// BcryptScheme stores salted bcrypt hashes.
type BcryptScheme struct {
	Cost int
}

var _ PasswordScheme = (*BcryptScheme)(nil)

func (s *BcryptScheme) Encode(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), s.Cost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}
	return string(hash), nil
}

func (*BcryptScheme) Matches(encoded, pwd string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(pwd)) == nil
}
