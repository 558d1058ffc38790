package user

import (
	"context"
	"errors"
	"testing"

	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users     map[uuid.UUID]*User
	findIDErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*User)}
}

func (f *fakeUserStore) createOne(_ context.Context, user *User) error {
	f.users[user.UserID] = user
	return nil
}

func (f *fakeUserStore) findByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) findByID(_ context.Context, userID uuid.UUID) (*User, error) {
	if f.findIDErr != nil {
		return nil, f.findIDErr
	}
	return f.users[userID], nil
}

func (f *fakeUserStore) updatePasswordHash(_ context.Context, userID uuid.UUID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return "token-for-" + userID.String(), nil
}

func registerReq() *RegisterRequest {
	return &RegisterRequest{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "hunter22",
		Phone:    "555-0100",
		Address:  "1 Analytical Way",
		Answer:   "lovelace",
	}
}

func TestRegisterUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, fakeTokens{})
	ctx := context.Background()

	created, err := svc.registerUser(ctx, registerReq())
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", created.Email)
	require.Equal(t, RoleUser, created.Role)
	require.NotEqual(t, "hunter22", created.PasswordHash)
	require.NotEqual(t, "lovelace", created.AnswerHash)

	// same email with different casing is still taken
	req := registerReq()
	req.Email = "ADA@EXAMPLE.COM"
	_, err = svc.registerUser(ctx, req)
	require.ErrorIs(t, err, servererrors.ErrEmailTaken)
}

func TestLoginUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, fakeTokens{})
	ctx := context.Background()

	created, err := svc.registerUser(ctx, registerReq())
	require.NoError(t, err)

	u, token, err := svc.loginUser(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, created.UserID, u.UserID)
	require.Equal(t, "token-for-"+created.UserID.String(), token)

	// unknown email and wrong password are the same failure
	_, _, err = svc.loginUser(ctx, "nobody@example.com", "hunter22")
	require.ErrorIs(t, err, servererrors.ErrInvalidCredentials)

	_, _, err = svc.loginUser(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
}

func TestForgotPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, fakeTokens{})
	ctx := context.Background()

	_, err := svc.registerUser(ctx, registerReq())
	require.NoError(t, err)

	err = svc.forgotPassword(ctx, &ForgotPasswordRequest{
		Email:       "ada@example.com",
		Answer:      "wrong-answer",
		NewPassword: "newpass1",
	})
	require.ErrorIs(t, err, servererrors.ErrWrongAnswer)

	err = svc.forgotPassword(ctx, &ForgotPasswordRequest{
		Email:       "ada@example.com",
		Answer:      "lovelace",
		NewPassword: "newpass1",
	})
	require.NoError(t, err)

	_, _, err = svc.loginUser(ctx, "ada@example.com", "hunter22")
	require.ErrorIs(t, err, servererrors.ErrInvalidCredentials)

	_, _, err = svc.loginUser(ctx, "ada@example.com", "newpass1")
	require.NoError(t, err)
}

func TestIsAdminDistinguishesMissingFromStoreFailure(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, fakeTokens{})
	ctx := context.Background()

	created, err := svc.registerUser(ctx, registerReq())
	require.NoError(t, err)

	isAdmin, err := svc.IsAdmin(ctx, created.UserID)
	require.NoError(t, err)
	require.False(t, isAdmin)

	created.Role = RoleAdmin
	isAdmin, err = svc.IsAdmin(ctx, created.UserID)
	require.NoError(t, err)
	require.True(t, isAdmin)

	// a user that does not exist is not-admin, not a failure
	isAdmin, err = svc.IsAdmin(ctx, uuid.New())
	require.NoError(t, err)
	require.False(t, isAdmin)

	// a store error must propagate so the caller can answer 500, not 403
	store.findIDErr = errors.New("connection reset")
	_, err = svc.IsAdmin(ctx, created.UserID)
	require.Error(t, err)
}
