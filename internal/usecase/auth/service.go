package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "realty/backend/internal/domain/auth"

	"github.com/google/uuid"
)

// Service coordinates signup, signin, and product key workflows.
type Service struct {
	users            domain.UserRepository
	tokens           TokenManager
	hasher           SecretHasher
	productKeySecret string
	nowFunc          func() time.Time
}

// NewService constructs an auth service. productKeySecret is the process-wide
// secret mixed into product key derivation; it is read-only after start and
// must never be logged or returned.
func NewService(users domain.UserRepository, tokens TokenManager, hasher SecretHasher, productKeySecret string) *Service {
	return &Service{
		users:            users,
		tokens:           tokens,
		hasher:           hasher,
		productKeySecret: productKeySecret,
		nowFunc:          time.Now,
	}
}

// SignupInput carries the raw signup payload. ProductKey is required for any
// role other than buyer.
type SignupInput struct {
	Email      string
	Name       string
	Phone      string
	Password   string
	ProductKey string
}

// Signup registers a new account and returns a bearer token bound to it.
// Privileged roles must present a product key that verifies against the
// caller's email and requested role.
func (s *Service) Signup(ctx context.Context, role domain.Role, in SignupInput) (string, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	password := strings.TrimSpace(in.Password)
	if email == "" {
		return "", errors.New("email is required")
	}
	if password == "" {
		return "", errors.New("password is required")
	}

	if role != domain.RoleBuyer {
		if in.ProductKey == "" {
			return "", domain.ErrUnauthorized
		}
		if !s.hasher.Verify(s.productKeyMaterial(email, role), in.ProductKey) {
			return "", domain.ErrUnauthorized
		}
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	now := s.nowFunc().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         role,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	return s.tokens.Issue(user.Name, user.ID)
}

// Signin validates credentials and returns a bearer token. Unknown emails and
// wrong passwords fail identically.
func (s *Service) Signin(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Name, user.ID)
}

// GenerateProductKey derives the key material for the email/role pair and
// returns its hash. The hash is handed out-of-band to a prospective
// realtor/admin and submitted back at signup. The hash salts per call, so
// repeated calls yield different strings that all verify against the pair.
func (s *Service) GenerateProductKey(email string, role domain.Role) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", errors.New("email is required")
	}
	return s.hasher.Hash(s.productKeyMaterial(email, role))
}

// VerifyToken decodes a bearer token into its identity claims.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	return s.tokens.Decode(token)
}

func (s *Service) productKeyMaterial(email string, role domain.Role) string {
	return fmt.Sprintf("%s-%s-%s", email, role, s.productKeySecret)
}
