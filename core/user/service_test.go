package user_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/user"
	logsvc "github.com/trezcool/mahudhurio/services/logger"
	sqlxrepos "github.com/trezcool/mahudhurio/storage/database/sqlx"
	"github.com/trezcool/mahudhurio/tests"
)

func newService(t *testing.T, scheme user.PasswordScheme) user.Service {
	db := testutil.PrepareDB(t)
	return user.NewService(sqlxrepos.NewUserRepository(db), scheme, &logsvc.NopLogger{})
}

func TestService_Register(t *testing.T) {
	svc := newService(t, &user.PlainScheme{})
	ctx := context.Background()

	tests := []struct {
		name    string
		nu      user.NewUser
		wantErr error
	}{
		{name: "blank username", nu: user.NewUser{Username: "  ", Password: "pwd"}, wantErr: core.ErrInvalidInput},
		{name: "no password", nu: user.NewUser{Username: "ann"}, wantErr: core.ErrInvalidInput},
		{name: "register", nu: user.NewUser{Username: " ann ", Password: " pwd "}},
		{name: "username taken", nu: user.NewUser{Username: "ann", Password: "other"}, wantErr: core.ErrDuplicateKey},
		{name: "usernames are case sensitive", nu: user.NewUser{Username: "Ann", Password: "pwd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.Register(ctx, tt.nu)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "Register() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, usr.ID)
			assert.Equal(t, core.CleanString(tt.nu.Username), usr.Username)
		})
	}

	// passwords are kept as typed
	_, err := svc.Authenticate(ctx, "ann", " pwd ")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "ann", "pwd")
	assert.Equal(t, core.ErrInvalidCredentials, err)
}

func TestService_Authenticate(t *testing.T) {
	for _, scheme := range []user.PasswordScheme{&user.PlainScheme{}, &user.BcryptScheme{Cost: 4}} {
		svc := newService(t, scheme)
		ctx := context.Background()
		registered, err := svc.Register(ctx, user.NewUser{Username: "ann", Password: "pwd"})
		require.NoError(t, err)

		tests := []struct {
			name     string
			username string
			pwd      string
			wantErr  error
		}{
			{name: "unknown user", username: "bob", pwd: "pwd", wantErr: core.ErrInvalidCredentials},
			{name: "wrong password", username: "ann", pwd: "lol", wantErr: core.ErrInvalidCredentials},
			{name: "empty password", username: "ann", wantErr: core.ErrInvalidCredentials},
			{name: "wrong case", username: "ANN", pwd: "pwd", wantErr: core.ErrInvalidCredentials},
			{name: "authenticate", username: "ann", pwd: "pwd"},
			{name: "username is trimmed", username: " ann\t", pwd: "pwd"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				usr, err := svc.Authenticate(ctx, tt.username, tt.pwd)
				if tt.wantErr != nil {
					assert.Equal(t, tt.wantErr, err)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, registered, usr)
			})
		}
	}
}

func TestNewPasswordScheme(t *testing.T) {
	scheme, err := user.NewPasswordScheme(core.PasswordSchemeBcrypt)
	require.NoError(t, err)

	encoded, err := scheme.Encode("pwd")
	require.NoError(t, err)
	assert.NotEqual(t, "pwd", encoded)
	assert.True(t, scheme.Matches(encoded, "pwd"))
	assert.False(t, scheme.Matches(encoded, "Pwd"))

	scheme, err = user.NewPasswordScheme(core.PasswordSchemePlain)
	require.NoError(t, err)
	assert.Equal(t, &user.PlainScheme{}, scheme)

	_, err = user.NewPasswordScheme("md5")
	assert.Error(t, err)
}

func TestNewService_configuredScheme(t *testing.T) {
	db := testutil.PrepareDB(t)
	for _, name := range []string{core.PasswordSchemePlain, core.PasswordSchemeBcrypt} {
		t.Run(name, func(t *testing.T) {
			scheme, err := user.NewPasswordScheme(name)
			require.NoError(t, err)

			var svc user.Service
			require.NotPanics(t, func() {
				svc = user.NewService(sqlxrepos.NewUserRepository(db), scheme, &logsvc.NopLogger{})
			})
			_, err = svc.Register(context.Background(), user.NewUser{Username: name, Password: "pwd"})
			require.NoError(t, err)
			_, err = svc.Authenticate(context.Background(), name, "pwd")
			assert.NoError(t, err)
		})
	}
}
