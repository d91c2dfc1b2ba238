package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
)

// CreateUserInput carries the fields of a creation request.
type CreateUserInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

// UpdateUserInput carries the optional fields of a partial update.
// The plaintext password, when present, is hashed before persisting.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
	Role     *string
}

// UserService coordinates user CRUD flows.
type UserService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository) *UserService {
	return &UserService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.PrivateKey, cfg.Auth.PublicKey, cfg.Auth.TokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the token component for the auth middleware.
func (s *UserService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Create hashes the password, persists a new user and issues an identity
// token keyed on the generated id.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         domain.Role(in.Role),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", err
	}

	token, _, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// List returns every stored user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Get resolves a single user by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update applies a partial update, hashing the password when one is supplied.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	patch := domain.UserPatch{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Role:  in.Role,
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Delete removes a user and returns the removed record.
func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	return s.users.Delete(ctx, id)
}
