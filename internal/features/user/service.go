package user

import (
	"context"
	"strings"
	"time"

	"github.com/craftandcart/storefront/internal/auth"
	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/google/uuid"
)

type Storer interface {
	createOne(ctx context.Context, user *User) error
	findByEmail(ctx context.Context, email string) (*User, error)
	findByID(ctx context.Context, userID uuid.UUID) (*User, error)
	updatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

type tokenGenerator interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
}

type service struct {
	store  Storer
	tokens tokenGenerator
}

func NewService(store Storer, tokens tokenGenerator) *service {
	return &service{
		store:  store,
		tokens: tokens,
	}
}

func (s *service) registerUser(ctx context.Context, req *RegisterRequest) (*User, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.store.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, servererrors.ErrEmailTaken
	}

	passwordHash, err := auth.HashSecret(req.Password)
	if err != nil {
		return nil, err
	}

	answerHash, err := auth.HashSecret(req.Answer)
	if err != nil {
		return nil, err
	}

	newUser := &User{
		UserID:       uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		AnswerHash:   answerHash,
		Role:         RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.createOne(ctx, newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

func (s *service) loginUser(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.store.findByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if u == nil || !auth.CompareSecret(u.PasswordHash, password) {
		return nil, "", servererrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(u.UserID)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *service) forgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	u, err := s.store.findByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return err
	}
	if u == nil || !auth.CompareSecret(u.AnswerHash, req.Answer) {
		return servererrors.ErrWrongAnswer
	}

	passwordHash, err := auth.HashSecret(req.NewPassword)
	if err != nil {
		return err
	}

	return s.store.updatePasswordHash(ctx, u.UserID, passwordHash)
}

// IsAdmin reports whether userID belongs to an admin. A missing user is
// (false, nil); only a store failure returns an error, so callers can keep
// forbidden and server-fault outcomes apart.
func (s *service) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	u, err := s.store.findByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}

	return u.Role == RoleAdmin, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
