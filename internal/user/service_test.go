package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/openbistro/cafe-booking-backend/internal/auth"
)

type fakeRepo struct {
	users  map[int64]*User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]*User{}, nextID: 1}
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeRepo) UpdateLastLogin(ctx context.Context, id int64, t time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeRepo) SetActive(ctx context.Context, id int64, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = active
	return nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	// MinCost keeps the hashing fast in tests.
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost)), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Guest@Example.COM",
		Password: "secret-password",
	})
	require.NoError(t, err)

	assert.Equal(t, "guest@example.com", u.Email, "email should be lowercased")
	assert.Equal(t, RoleCustomer, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret-password", u.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "  ", Password: "secret-password"})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "secret-password"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "A@B.com", Password: "secret-password"})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "secret-password"})
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "a@b.com", "secret-password")
	require.NoError(t, err)
	assert.NotNil(t, u.LastLoginAt)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "secret-password"})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "a@b.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmailHidesExistence(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Authenticate(context.Background(), "ghost@b.com", "whatever-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email must not be distinguishable")
}

func TestAuthenticateInactiveUser(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "secret-password"})
	require.NoError(t, err)

	require.NoError(t, repo.SetActive(context.Background(), u.ID, false))

	_, err = svc.Authenticate(context.Background(), "a@b.com", "secret-password")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestUpdateRole(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "secret-password"})
	require.NoError(t, err)

	role := "manager"
	updated, err := svc.Update(context.Background(), u.ID, UpdateRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, RoleManager, updated.Role)
	assert.True(t, updated.Role.IsStaff())

	bad := "superuser"
	_, err = svc.Update(context.Background(), u.ID, UpdateRequest{Role: &bad})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRoleHelpers(t *testing.T) {
	assert.False(t, RoleCustomer.IsStaff())
	assert.True(t, RoleManager.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())

	assert.True(t, ValidRole("customer"))
	assert.False(t, ValidRole("owner"))
	assert.False(t, ValidRole(strings.ToUpper("admin")))
}
