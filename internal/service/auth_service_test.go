package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vybe-social/vybe/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Search(ctx context.Context, query string) ([]domain.UserSummary, error) {
	args := m.Called(ctx, query)
	users, _ := args.Get(0).([]domain.UserSummary)
	return users, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdateProfileImg(ctx context.Context, id uuid.UUID, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

func (m *mockUserRepo) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return m.Called(ctx, followerID, followeeID).Error(0)
}

func (m *mockUserRepo) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return m.Called(ctx, followerID, followeeID).Error(0)
}

func (m *mockUserRepo) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ListFollowers(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error) {
	args := m.Called(ctx, userID)
	users, _ := args.Get(0).([]domain.UserSummary)
	return users, args.Error(1)
}

func (m *mockUserRepo) ListFollowing(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error) {
	args := m.Called(ctx, userID)
	users, _ := args.Get(0).([]domain.UserSummary)
	return users, args.Error(1)
}

func TestSignUpSuccess(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
	userRepo.On("GetByUsername", mock.Anything, "ana_v").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := NewAuthService(userRepo, "test-secret")

	resp, err := svc.SignUp(context.Background(), SignUpInput{
		Name:     "Ana V",
		Email:    "ana@example.com",
		Username: "ana_v",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "ana_v", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, "secret1", resp.User.PasswordHash)

	// token carries the user id as subject
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), sub)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.User{ID: uuid.New()}, nil)

	svc := NewAuthService(userRepo, "test-secret")

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "taken@example.com",
		Username: "newbie",
		Password: "secret1",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUpDuplicateUsername(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, nil)
	userRepo.On("GetByUsername", mock.Anything, "taken").Return(&domain.User{ID: uuid.New()}, nil)

	svc := NewAuthService(userRepo, "test-secret")

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "fresh@example.com",
		Username: "taken",
		Password: "secret1",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestSignInSuccess(t *testing.T) {
	hash, err := hashPassword("secret1")
	require.NoError(t, err)

	userRepo := new(mockUserRepo)
	userRepo.On("GetByUsername", mock.Anything, "ana_v").Return(&domain.User{
		ID:           uuid.New(),
		Username:     "ana_v",
		PasswordHash: hash,
	}, nil)

	svc := NewAuthService(userRepo, "test-secret")

	resp, err := svc.SignIn(context.Background(), SignInInput{Username: "ana_v", Password: "secret1"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestSignInWrongPassword(t *testing.T) {
	hash, err := hashPassword("secret1")
	require.NoError(t, err)

	userRepo := new(mockUserRepo)
	userRepo.On("GetByUsername", mock.Anything, "ana_v").Return(&domain.User{
		ID:           uuid.New(),
		PasswordHash: hash,
	}, nil)

	svc := NewAuthService(userRepo, "test-secret")

	_, err = svc.SignIn(context.Background(), SignInInput{Username: "ana_v", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestSignInUnknownUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	svc := NewAuthService(userRepo, "test-secret")

	_, err := svc.SignIn(context.Background(), SignInInput{Username: "ghost", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestVerifyPasswordRejectsGarbage(t *testing.T) {
	assert.False(t, verifyPassword("secret1", "not-an-encoded-hash"))
	assert.False(t, verifyPassword("secret1", "bad!:bad!"))
}
