package auth

import (
	"context"
	"testing"
	"time"

	"tessera/internal/shared/config"
	"tessera/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository keeps users in memory keyed by email
type fakeRepository struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byEmail: make(map[string]*users.User),
		byID:    make(map[string]*users.User),
	}
}

func (f *fakeRepository) CreateUser(ctx context.Context, user *users.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID.String()] = user
	return nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.JWTExpiresIn = time.Hour
	cfg.JWT.RefreshExpiresIn = 24 * time.Hour
	return cfg
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct horse",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(newFakeRepository(), testConfig())

	registered, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.Equal(t, "ada@example.com", registered.User.Email)
	assert.Equal(t, string(users.RoleUser), registered.User.Role)

	loggedIn, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepository(), testConfig())

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService(newFakeRepository(), testConfig())
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyReturnsUserID(t *testing.T) {
	svc := NewService(newFakeRepository(), testConfig())

	registered, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	userID, err := svc.Verify(context.Background(), registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)

	// Refresh tokens are not an identity credential
	_, err = svc.Verify(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc := NewService(newFakeRepository(), testConfig())

	registered, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token cannot be used to refresh
	_, err = svc.RefreshToken(context.Background(), registered.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
