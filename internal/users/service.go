package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// TokenSigner issues session tokens.
type TokenSigner interface {
	Sign(userID, email, name string) (string, error)
}

type Service struct {
	Repo   Repo
	Tokens TokenSigner
}

func NewService(repo Repo, tokens TokenSigner) *Service {
	return &Service{Repo: repo, Tokens: tokens}
}

// Sync registers the email on first sight and returns a fresh session.
func (s *Service) Sync(ctx context.Context, in SyncInput) (Session, error) {
	if s == nil || s.Repo == nil || s.Tokens == nil {
		return Session{}, errors.New("users service not configured")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return Session{}, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	user, err := s.Repo.FindOrCreate(ctx, User{ID: uuid.NewString(), Email: email, Name: name})
	if err != nil {
		return Session{}, err
	}
	token, err := s.Tokens.Sign(user.ID, user.Email, user.Name)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: user.ID, Name: user.Name, Email: user.Email, Token: token}, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}
