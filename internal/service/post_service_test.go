package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vybe-social/vybe/internal/domain"
)

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*domain.Post)
	return post, args.Error(1)
}

func (m *mockPostRepo) ListFeed(ctx context.Context) ([]domain.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]domain.Post)
	return posts, args.Error(1)
}

func (m *mockPostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error) {
	args := m.Called(ctx, authorID)
	posts, _ := args.Get(0).([]domain.Post)
	return posts, args.Error(1)
}

func (m *mockPostRepo) Update(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPostRepo) Like(ctx context.Context, postID, userID uuid.UUID) error {
	return m.Called(ctx, postID, userID).Error(0)
}

func (m *mockPostRepo) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	return m.Called(ctx, postID, userID).Error(0)
}

func (m *mockPostRepo) HasLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*domain.Comment)
	return comment, args.Error(1)
}

func (m *mockCommentRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]domain.Comment)
	return comments, args.Error(1)
}

func (m *mockCommentRepo) ListByLoop(ctx context.Context, loopID uuid.UUID) ([]domain.Comment, error) {
	args := m.Called(ctx, loopID)
	comments, _ := args.Get(0).([]domain.Comment)
	return comments, args.Error(1)
}

func (m *mockCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestToggleLikeLikesWhenNotYetLiked(t *testing.T) {
	postID := uuid.New()
	userID := uuid.New()

	postRepo := new(mockPostRepo)
	postRepo.On("GetByID", mock.Anything, postID).Return(&domain.Post{ID: postID}, nil)
	postRepo.On("HasLiked", mock.Anything, postID, userID).Return(false, nil)
	postRepo.On("Like", mock.Anything, postID, userID).Return(nil)

	svc := NewPostService(postRepo, new(mockCommentRepo))

	liked, err := svc.ToggleLike(context.Background(), postID, userID)

	require.NoError(t, err)
	assert.True(t, liked)
	postRepo.AssertNotCalled(t, "Unlike", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleLikeUnlikesWhenAlreadyLiked(t *testing.T) {
	postID := uuid.New()
	userID := uuid.New()

	postRepo := new(mockPostRepo)
	postRepo.On("GetByID", mock.Anything, postID).Return(&domain.Post{ID: postID}, nil)
	postRepo.On("HasLiked", mock.Anything, postID, userID).Return(true, nil)
	postRepo.On("Unlike", mock.Anything, postID, userID).Return(nil)

	svc := NewPostService(postRepo, new(mockCommentRepo))

	liked, err := svc.ToggleLike(context.Background(), postID, userID)

	require.NoError(t, err)
	assert.False(t, liked)
	postRepo.AssertNotCalled(t, "Like", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	postRepo := new(mockPostRepo)
	postRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewPostService(postRepo, new(mockCommentRepo))

	_, err := svc.ToggleLike(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdateCaptionOnlyForAuthor(t *testing.T) {
	postID := uuid.New()

	postRepo := new(mockPostRepo)
	postRepo.On("GetByID", mock.Anything, postID).Return(&domain.Post{ID: postID, AuthorID: uuid.New()}, nil)

	svc := NewPostService(postRepo, new(mockCommentRepo))

	_, err := svc.UpdateCaption(context.Background(), postID, uuid.New(), "new caption")

	assert.ErrorIs(t, err, ErrNotPostAuthor)
	postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddCommentRejectsEmpty(t *testing.T) {
	svc := NewPostService(new(mockPostRepo), new(mockCommentRepo))

	_, err := svc.AddComment(context.Background(), uuid.New(), uuid.New(), "")

	assert.ErrorIs(t, err, ErrEmptyComment)
}

func TestDeleteCommentByCommentAuthor(t *testing.T) {
	postID := uuid.New()
	commentID := uuid.New()
	commenterID := uuid.New()

	postRepo := new(mockPostRepo)
	postRepo.On("GetByID", mock.Anything, postID).Return(&domain.Post{ID: postID, AuthorID: uuid.New()}, nil)

	commentRepo := new(mockCommentRepo)
	commentRepo.On("GetByID", mock.Anything, commentID).Return(&domain.Comment{
		ID:       commentID,
		AuthorID: commenterID,
		PostID:   &postID,
	}, nil)
	commentRepo.On("Delete", mock.Anything, commentID).Return(nil)

	svc := NewPostService(postRepo, commentRepo)

	err := svc.DeleteComment(context.Background(), postID, commentID, commenterID)

	assert.NoError(t, err)
}

func TestDeleteCommentByPostAuthor(t *testing.T) {
	postID := uuid.New()
	commentID := uuid.New()
	postAuthorID := uuid.New()

	postRepo := new(mockPostRepo)
	postRepo.On("GetByID", mock.Anything, postID).Return(&domain.Post{ID: postID, AuthorID: postAuthorID}, nil)

	commentRepo := new(mockCommentRepo)
	commentRepo.On("GetByID", mock.Anything, commentID).Return(&domain.Comment{
		ID:       commentID,
		AuthorID: uuid.New(),
		PostID:   &postID,
	}, nil)
	commentRepo.On("Delete", mock.Anything, commentID).Return(nil)

	svc := NewPostService(postRepo, commentRepo)

	err := svc.DeleteComment(context.Background(), postID, commentID, postAuthorID)

	assert.NoError(t, err)
}

func TestDeleteCommentForbiddenForBystander(t *testing.T) {
	postID := uuid.New()
	commentID := uuid.New()

	postRepo := new(mockPostRepo)
	postRepo.On("GetByID", mock.Anything, postID).Return(&domain.Post{ID: postID, AuthorID: uuid.New()}, nil)

	commentRepo := new(mockCommentRepo)
	commentRepo.On("GetByID", mock.Anything, commentID).Return(&domain.Comment{
		ID:       commentID,
		AuthorID: uuid.New(),
		PostID:   &postID,
	}, nil)

	svc := NewPostService(postRepo, commentRepo)

	err := svc.DeleteComment(context.Background(), postID, commentID, uuid.New())

	assert.ErrorIs(t, err, ErrNotCommentOwner)
	commentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteCommentWrongPost(t *testing.T) {
	postID := uuid.New()
	otherPostID := uuid.New()
	commentID := uuid.New()

	postRepo := new(mockPostRepo)
	postRepo.On("GetByID", mock.Anything, postID).Return(&domain.Post{ID: postID, AuthorID: uuid.New()}, nil)

	commentRepo := new(mockCommentRepo)
	commentRepo.On("GetByID", mock.Anything, commentID).Return(&domain.Comment{
		ID:       commentID,
		AuthorID: uuid.New(),
		PostID:   &otherPostID,
	}, nil)

	svc := NewPostService(postRepo, commentRepo)

	err := svc.DeleteComment(context.Background(), postID, commentID, uuid.New())

	assert.ErrorIs(t, err, ErrCommentNotFound)
}
