package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/models"
)

type AuthService struct {
	users  *UserStore
	hasher *PasswordHasher
	tokens *TokenIssuer
}

func NewAuthService(users *UserStore, hasher *PasswordHasher, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login returns ErrInvalidCredentials for a malformed request, an unknown
// username and a wrong password alike.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token}, nil
}

func (s *AuthService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidUser
	}
	role := req.Role
	if role == "" {
		role = "user"
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, req.Username, hash, role)
}

// SeedAdmin creates the default admin account when it does not exist yet.
// Losing a creation race to another process is not an error.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	if _, err := s.users.Create(ctx, username, hash, models.RoleAdmin); err != nil {
		if errors.Is(err, ErrConflict) {
			slog.Info("admin user created concurrently", "username", username)
			return nil
		}
		return err
	}

	slog.Info("admin user seeded", "username", username)
	return nil
}
