package service_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/service"
)

type stubUserRepo struct {
	byID    map[string]*domain.User
	order   []string
	created []*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) List(context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, *r.byID[id])
	}
	return users, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.byID[user.ID] = &copied
	r.order = append(r.order, user.ID)
	r.created = append(r.created, &copied)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		user.Role = domain.Role(*patch.Role)
	}
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(r.byID, id)
	for i, ordered := range r.order {
		if ordered == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return user, nil
}

func newTestService(t *testing.T) (*service.UserService, *stubUserRepo) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := config.Config{Auth: config.AuthConfig{
		PrivateKey:    key,
		PublicKey:     &key.PublicKey,
		TokenTTLHours: 48,
		BcryptCost:    bcrypt.MinCost,
	}}
	repo := newStubUserRepo()
	return service.NewUserService(cfg, repo), repo
}

func TestUserService_Create(t *testing.T) {
	svc, repo := newTestService(t)

	user, token, err := svc.Create(context.Background(), service.CreateUserInput{
		Name:     "A",
		Email:    "a@x.com",
		Phone:    "1",
		Password: "p",
		Role:     "user",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Len(t, repo.created, 1)

	// stored password is a hash of the plaintext, never the plaintext itself
	assert.NotEqual(t, "p", user.PasswordHash)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "p"))

	tokenUser, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, tokenUser.ID)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, repo := newTestService(t)

	_, _, err := svc.Create(context.Background(), service.CreateUserInput{
		Name: "A", Email: "a@x.com", Phone: "1", Password: "p", Role: "user",
	})
	require.NoError(t, err)

	_, _, err = svc.Create(context.Background(), service.CreateUserInput{
		Name: "B", Email: "a@x.com", Phone: "2", Password: "q", Role: "admin",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Len(t, repo.created, 1)
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	svc, _ := newTestService(t)

	user, _, err := svc.Create(context.Background(), service.CreateUserInput{
		Name: "A", Email: "a@x.com", Phone: "1", Password: "p", Role: "user",
	})
	require.NoError(t, err)

	newPassword := "changed"
	updated, err := svc.Update(context.Background(), user.ID, service.UpdateUserInput{
		Password: &newPassword,
	})
	require.NoError(t, err)

	assert.NotEqual(t, newPassword, updated.PasswordHash)
	assert.NoError(t, auth.ComparePassword(updated.PasswordHash, newPassword))
	assert.Equal(t, "A", updated.Name)
	assert.Equal(t, "a@x.com", updated.Email)
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	name := "B"
	_, err := svc.Update(context.Background(), "00000000-0000-0000-0000-000000000000", service.UpdateUserInput{Name: &name})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserService_Delete_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)

	user, _, err := svc.Create(context.Background(), service.CreateUserInput{
		Name: "A", Email: "a@x.com", Phone: "1", Password: "p", Role: "user",
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, deleted.ID)

	_, err = svc.Delete(context.Background(), user.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
