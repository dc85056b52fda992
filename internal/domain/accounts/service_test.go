package accounts

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prajayganiga-design/Mini-project/internal/auth"
)

type fakeRepo struct {
	byEmail map[string]*Account
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*Account), nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, account Account) (int64, error) {
	if _, exists := r.byEmail[account.Email]; exists {
		return 0, ErrEmailTaken
	}
	account.ID = r.nextID
	r.nextID++
	r.byEmail[account.Email] = &account
	return account.ID, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*Account, error) {
	account, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *account
	return &copied, nil
}

type fakeIssuer struct{}

func (fakeIssuer) Generate(userID int64, email string, role auth.Role) (string, error) {
	return fmt.Sprintf("token:%d:%s:%s", userID, email, role), nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, fakeIssuer{}, zerolog.Nop())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	id, err := svc.Register(ctx, "Alice@Example.com", "sup3rSecret!", "user")
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	token, user, err := svc.Login(ctx, "alice@example.com", "sup3rSecret!")
	require.NoError(t, err)
	require.Equal(t, "token:1:alice@example.com:user", token)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, auth.RoleUser, user.Role)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		email, password, role string
	}{
		{"", "sup3rSecret!", "user"},
		{"a@b.com", "", "user"},
		{"a@b.com", "sup3rSecret!", ""},
		{"   ", "sup3rSecret!", "user"},
	}
	for _, tc := range cases {
		_, err := svc.Register(ctx, tc.email, tc.password, tc.role)
		var verr ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "Email, password, and role are required", verr.Message)
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Register(context.Background(), "a@b.com", "sup3rSecret!", "owner")
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Role must be user or admin", verr.Message)
}

func TestRegisterParticipantAlias(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "a@b.com", "sup3rSecret!", "participant")
	require.NoError(t, err)
	require.Equal(t, auth.RoleUser, repo.byEmail["a@b.com"].Role)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	for _, password := range []string{"sh0rt!", "longenoughbutplain"} {
		_, err := svc.Register(ctx, "a@b.com", password, "user")
		var verr ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "Password must be at least 8 characters and include one special character", verr.Message)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "sup3rSecret!", "user")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "A@B.COM", "an0therSecret!", "admin")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "a@b.com", "sup3rSecret!", "admin")
	require.NoError(t, err)

	stored := repo.byEmail["a@b.com"]
	require.NotEqual(t, "sup3rSecret!", stored.PasswordHash)
	require.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
	require.Equal(t, auth.RoleAdmin, stored.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "sup3rSecret!", "user")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "nobody@b.com", "sup3rSecret!")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "a@b.com", "wrongPassword!")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "a@b.com", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
