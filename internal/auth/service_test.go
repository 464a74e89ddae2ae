package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretgate/internal/auth"
	"secretgate/internal/user"
)

func newTestService() (*auth.Service, *memUserStore) {
	users := newMemUserStore()
	return auth.NewService(users), users
}

func TestService_Register(t *testing.T) {
	svc, users := newTestService()

	u, err := svc.Register(context.Background(), "ada@example.com", "enchantress", "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.NotZero(t, u.ID)

	stored, err := users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "enchantress", stored.PasswordHash)
	assert.True(t, auth.VerifyPassword(stored.PasswordHash, "enchantress"))
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, users := newTestService()

	_, err := svc.Register(context.Background(), "ada@example.com", "enchantress", "Ada Lovelace")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "ada@example.com", "different1", "Someone Else")
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
	assert.Equal(t, 1, users.count())
}

func TestService_Register_ConcurrentDuplicates(t *testing.T) {
	svc, users := newTestService()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), "race@example.com", "password1", "Racer")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, user.ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, users.count())
}

func TestService_Register_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		userName string
		want     error
	}{
		{"missing email", "", "password1", "Ada", auth.ErrEmailRequired},
		{"bad email", "not-an-email", "password1", "Ada", auth.ErrInvalidEmailFormat},
		{"missing password", "ada@example.com", "", "Ada", auth.ErrPasswordRequired},
		{"short password", "ada@example.com", "short", "Ada", auth.ErrPasswordTooShort},
		{"missing name", "ada@example.com", "password1", "", auth.ErrNameRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.email, tc.password, tc.userName)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_Login(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "ada@example.com", "enchantress", "Ada Lovelace")
	require.NoError(t, err)

	u, err := svc.Login(ctx, "ada@example.com", "enchantress")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.Equal(t, "Ada Lovelace", u.Name)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada@example.com", "enchantress", "Ada Lovelace")
	require.NoError(t, err)

	// Wrong password and unknown email fail with the same error so callers
	// cannot learn whether an email is registered
	_, wrongPassword := svc.Login(ctx, "ada@example.com", "not the password")
	_, unknownEmail := svc.Login(ctx, "nobody@example.com", "enchantress")

	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestService_Login_EmptyInput(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
