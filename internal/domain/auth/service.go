package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

type Service struct {
	Store  StoreAPI
	Tokens *Issuer
	Hash   func(string) (string, error)
}

func NewService(store StoreAPI, tokens *Issuer) *Service {
	return &Service{Store: store, Tokens: tokens, Hash: HashPassword}
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// burnCompare spends roughly the cost of a real verification so unknown
// emails are not distinguishable by timing.
func burnCompare(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = HashPassword("not-a-real-password")
	})
	_ = CheckPassword(dummyHash, password)
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrCredentialsRequired
	}

	account, err := s.Store.FindAccountByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		burnCompare(password)
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("lookup account: %w", err)
	}

	if err := CheckPassword(account.PasswordHash, password); err != nil {
		if errors.Is(err, ErrPasswordMismatch) || errors.Is(err, ErrUnsupportedHash) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}
	if account.Status != StatusActive {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.Tokens.Issue(account)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, ExpiresAt: expiresAt, User: sessionUser(account)}, nil
}

func (s *Service) ChangePassword(ctx context.Context, accountID int64, current, next string) error {
	if current == "" || next == "" {
		return ErrPasswordsRequired
	}
	account, err := s.Store.AccountByID(ctx, accountID)
	if errors.Is(err, ErrAccountNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("lookup account: %w", err)
	}
	if err := CheckPassword(account.PasswordHash, current); err != nil {
		if errors.Is(err, ErrPasswordMismatch) || errors.Is(err, ErrUnsupportedHash) {
			return ErrIncorrectPassword
		}
		return fmt.Errorf("verify password: %w", err)
	}

	hash, err := s.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.UpdatePasswordHash(ctx, accountID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *Service) Profile(ctx context.Context, accountID int64) (Profile, error) {
	account, err := s.Store.AccountByID(ctx, accountID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		ID:           account.ID,
		Kind:         account.Kind,
		Email:        account.Email,
		Role:         account.EffectiveRole(),
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		Position:     account.Position,
		EmployeeID:   account.EmployeeID,
		EmployeeCode: account.EmployeeCode,
		DepartmentID: account.DepartmentID,
		IsAdmin:      account.IsAdmin(),
		CreatedAt:    account.CreatedAt,
	}, nil
}
