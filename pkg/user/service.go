package user

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type ServiceInterface interface {
	Register(email, password string) (*User, error)
	Login(email, password string) (*User, error)
}

type Service struct {
	Repo    Repository
	Session SessionRepository
}

func NewService(repo Repository, session SessionRepository) *Service {
	return &Service{Repo: repo, Session: session}
}

func (s *Service) Register(email, password string) (*User, error) {
	exist, err := s.Repo.FindByEmail(email)
	if exist != nil && err == nil {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password error: %s", err)
	}

	user := &User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}

	if _, err := s.Session.Create(user.ID, uuid.NewString()); err != nil {
		return nil, errors.New("failed to create session")
	}

	return user, nil
}

func (s *Service) Login(email, password string) (*User, error) {
	user, err := s.Repo.FindByEmail(email)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	if _, err := s.Session.Create(user.ID, uuid.NewString()); err != nil {
		return nil, fmt.Errorf("failed to create session: %s", err)
	}

	return user, nil
}
