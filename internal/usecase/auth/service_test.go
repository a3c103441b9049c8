package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	domain "realty/backend/internal/domain/auth"
	"realty/backend/internal/infrastructure/secret"
	"realty/backend/internal/infrastructure/token"
	usecase "realty/backend/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productKeySecret = "server-side-secret"

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	created []*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.created = append(f.created, user)
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newService(repo *fakeUserRepo) (*usecase.Service, *token.JWTManager) {
	manager := token.NewJWTManager("signing-secret", time.Hour, "realty")
	return usecase.NewService(repo, manager, secret.NewBcryptHasher(), productKeySecret), manager
}

func TestSignup_PrivilegedRolesRequireProductKey(t *testing.T) {
	svc, _ := newService(newFakeUserRepo())

	for _, role := range []domain.Role{domain.RoleRealtor, domain.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			_, err := svc.Signup(context.Background(), role, usecase.SignupInput{
				Email:    "agent@example.com",
				Name:     "agent",
				Password: "password",
			})
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestSignup_ProductKeyVerification(t *testing.T) {
	svc, manager := newService(newFakeUserRepo())

	key, err := svc.GenerateProductKey("realtor@example.com", domain.RoleRealtor)
	require.NoError(t, err)

	t.Run("key bound to another email is rejected", func(t *testing.T) {
		_, err := svc.Signup(context.Background(), domain.RoleRealtor, usecase.SignupInput{
			Email:      "other@example.com",
			Name:       "other",
			Password:   "password",
			ProductKey: key,
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("key bound to another role is rejected", func(t *testing.T) {
		_, err := svc.Signup(context.Background(), domain.RoleAdmin, usecase.SignupInput{
			Email:      "realtor@example.com",
			Name:       "realtor",
			Password:   "password",
			ProductKey: key,
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("matching key signs up and issues a token", func(t *testing.T) {
		tokenString, err := svc.Signup(context.Background(), domain.RoleRealtor, usecase.SignupInput{
			Email:      "realtor@example.com",
			Name:       "brian",
			Password:   "password",
			ProductKey: key,
		})
		require.NoError(t, err)

		claims, err := manager.Decode(tokenString)
		require.NoError(t, err)
		assert.Equal(t, "brian", claims.Name)
		assert.NotEmpty(t, claims.UserID)
	})
}

func TestGenerateProductKey_RandomizedButBothVerify(t *testing.T) {
	svc, _ := newService(newFakeUserRepo())
	hasher := secret.NewBcryptHasher()

	first, err := svc.GenerateProductKey("realtor@example.com", domain.RoleRealtor)
	require.NoError(t, err)
	second, err := svc.GenerateProductKey("realtor@example.com", domain.RoleRealtor)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "hashes of the same key material must differ")

	material := fmt.Sprintf("%s-%s-%s", "realtor@example.com", domain.RoleRealtor, productKeySecret)
	assert.True(t, hasher.Verify(material, first))
	assert.True(t, hasher.Verify(material, second))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newService(repo)

	_, err := svc.Signup(context.Background(), domain.RoleBuyer, usecase.SignupInput{
		Email:    "buyer@example.com",
		Name:     "buyer",
		Password: "password",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, domain.RoleBuyer, repo.created[0].Role)

	_, err = svc.Signup(context.Background(), domain.RoleBuyer, usecase.SignupInput{
		Email:    "buyer@example.com",
		Name:     "someone else",
		Password: "another password",
	})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestSignup_NeverStoresPlaintextPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newService(repo)

	_, err := svc.Signup(context.Background(), domain.RoleBuyer, usecase.SignupInput{
		Email:    "buyer@example.com",
		Name:     "buyer",
		Password: "plaintext-password",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.NotEqual(t, "plaintext-password", repo.created[0].PasswordHash)
	assert.NotEmpty(t, repo.created[0].PasswordHash)
}

func TestSignin(t *testing.T) {
	repo := newFakeUserRepo()
	svc, manager := newService(repo)

	_, err := svc.Signup(context.Background(), domain.RoleBuyer, usecase.SignupInput{
		Email:    "buyer@example.com",
		Name:     "muma",
		Password: "password",
	})
	require.NoError(t, err)
	userID := repo.created[0].ID

	t.Run("correct password issues a token with the user's claims", func(t *testing.T) {
		tokenString, err := svc.Signin(context.Background(), "buyer@example.com", "password")
		require.NoError(t, err)

		claims, err := manager.Decode(tokenString)
		require.NoError(t, err)
		assert.Equal(t, "muma", claims.Name)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, wrongPassErr := svc.Signin(context.Background(), "buyer@example.com", "wrong")
		_, unknownErr := svc.Signin(context.Background(), "nobody@example.com", "password")

		assert.ErrorIs(t, wrongPassErr, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownErr, domain.ErrInvalidCredentials)
		assert.Equal(t, wrongPassErr.Error(), unknownErr.Error())
	})
}
