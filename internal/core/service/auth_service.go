package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/ports"
	"github.com/casalista/marketplace-api/internal/core/token"
)

// AuthService implements signup, signin and the product-key scheme.
type AuthService struct {
	users         ports.UserRepository
	signer        *token.Signer
	productSecret string
	logger        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, signer *token.Signer, productSecret string, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, signer: signer, productSecret: productSecret, logger: logger}
}

// Signup registers a new user with the requested role and returns a fresh
// bearer token. Duplicate emails surface as domain.ErrEmailTaken both from
// the pre-insert lookup and from the unique index underneath; store calls are
// treated as atomic units, there is no rollback path.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput, role domain.Role) (string, *domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("signup: lookup email: %w", err)
	}
	if existing != nil {
		return "", nil, domain.ErrEmailTaken
	}

	hash, err := token.HashSecret(input.Password)
	if err != nil {
		return "", nil, fmt.Errorf("signup: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	tkn, err := s.signer.Sign(created.ID, created.Name)
	if err != nil {
		return "", nil, fmt.Errorf("signup: sign token: %w", err)
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", string(role)).Msg("user registered")
	return tkn, created, nil
}

// Signin authenticates an email/password pair. Unknown email and wrong
// password are deliberately indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("signin: lookup email: %w", err)
	}

	if !token.VerifySecret(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.signer.Sign(user.ID, user.Name)
	if err != nil {
		return "", nil, fmt.Errorf("signin: sign token: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user signed in")
	return tkn, user, nil
}

// GenerateProductKey derives the shared-secret key a client must present to
// self-register with the given elevated role. No store access.
func (s *AuthService) GenerateProductKey(email string, role domain.Role) (string, error) {
	return token.HashSecret(s.keyMaterial(email, role))
}

// VerifyProductKey re-derives the key material for the claimed email and role
// and compares it under the one-way scheme. Keys are never decrypted.
func (s *AuthService) VerifyProductKey(email string, role domain.Role, key string) bool {
	return token.VerifySecret(s.keyMaterial(email, role), key)
}

func (s *AuthService) keyMaterial(email string, role domain.Role) string {
	return fmt.Sprintf("%s_%s_%s", email, role, s.productSecret)
}
