package session

import (
	"context"
	"errors"
)

// Session is the authenticated-user identity derived from a server-issued
// bearer token. At most one is active per process.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// Store is the durable key-value capability sessions are persisted to.
// A missing or unreadable record means "no session", never an error the
// user sees.
type Store interface {
	Save(s *Session) error
	Load() (*Session, error)
	Clear() error
}

// AuthService is the slice of the remote identity endpoint the Manager
// needs. Implementations report a rejected login as ErrInvalidCredentials
// and a duplicate registration as ErrEmailTaken.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	Register(ctx context.Context, email, password string) (token string, err error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")

	ErrEmptyCredentials = errors.New("email and password are required")
	ErrBadEmail         = errors.New("email format is not valid")
)

// Navigator is the routing collaborator: where to send the user after a
// successful login and after the session ends.
type Navigator interface {
	ToAuthenticated()
	ToLogin()
}

type Alerter interface {
	Alert(title, message string)
}
