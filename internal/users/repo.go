package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid user")
)

type Repo interface {
	// FindOrCreate returns the user registered under user.Email, inserting
	// user when the email is new. An existing record keeps its id and name.
	FindOrCreate(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
}
