package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vybe-social/vybe/internal/domain"
	"github.com/vybe-social/vybe/internal/repository"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostAuthor   = errors.New("only the post author can perform this action")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("not authorized to delete this comment")
	ErrEmptyComment    = errors.New("comment text is required")
)

type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *PostService {
	return &PostService{postRepo: postRepo, commentRepo: commentRepo}
}

func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, caption, mediaURL, mediaType string) (*domain.Post, error) {
	post := &domain.Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Caption:   caption,
		MediaURL:  mediaURL,
		MediaType: mediaType,
		CreatedAt: time.Now(),
		Likes:     []uuid.UUID{},
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	return post, nil
}

func (s *PostService) Feed(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.ListFeed(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

// ToggleLike likes the post when not yet liked, unlikes otherwise.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, ErrPostNotFound
	}

	liked, err := s.postRepo.HasLiked(ctx, postID, userID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, postID, userID); err != nil {
			return false, fmt.Errorf("unliking post: %w", err)
		}
		return false, nil
	}

	if err := s.postRepo.Like(ctx, postID, userID); err != nil {
		return false, fmt.Errorf("liking post: %w", err)
	}
	return true, nil
}

func (s *PostService) UpdateCaption(ctx context.Context, postID, userID uuid.UUID, caption string) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != userID {
		return nil, ErrNotPostAuthor
	}

	post.Caption = caption
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, postID, userID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != userID {
		return ErrNotPostAuthor
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

func (s *PostService) AddComment(ctx context.Context, postID, authorID uuid.UUID, body string) (*domain.Comment, error) {
	if body == "" {
		return nil, ErrEmptyComment
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		AuthorID:  authorID,
		PostID:    &postID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

func (s *PostService) ListComments(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

// DeleteComment is allowed for the comment author and for the post author.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, userID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.PostID == nil || *comment.PostID != postID {
		return ErrCommentNotFound
	}

	if comment.AuthorID != userID && post.AuthorID != userID {
		return ErrNotCommentOwner
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}
