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
	ErrLoopNotFound  = errors.New("loop not found")
	ErrNotLoopAuthor = errors.New("only the loop author can perform this action")
)

type LoopService struct {
	loopRepo    repository.LoopRepository
	commentRepo repository.CommentRepository
}

func NewLoopService(loopRepo repository.LoopRepository, commentRepo repository.CommentRepository) *LoopService {
	return &LoopService{loopRepo: loopRepo, commentRepo: commentRepo}
}

func (s *LoopService) Upload(ctx context.Context, authorID uuid.UUID, caption, mediaURL string) (*domain.Loop, error) {
	loop := &domain.Loop{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Caption:   caption,
		MediaURL:  mediaURL,
		CreatedAt: time.Now(),
		Likes:     []uuid.UUID{},
	}
	if err := s.loopRepo.Create(ctx, loop); err != nil {
		return nil, fmt.Errorf("creating loop: %w", err)
	}
	return loop, nil
}

func (s *LoopService) List(ctx context.Context) ([]domain.Loop, error) {
	loops, err := s.loopRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if loops == nil {
		loops = []domain.Loop{}
	}
	return loops, nil
}

func (s *LoopService) ToggleLike(ctx context.Context, loopID, userID uuid.UUID) (bool, error) {
	loop, err := s.loopRepo.GetByID(ctx, loopID)
	if err != nil {
		return false, err
	}
	if loop == nil {
		return false, ErrLoopNotFound
	}

	liked, err := s.loopRepo.HasLiked(ctx, loopID, userID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := s.loopRepo.Unlike(ctx, loopID, userID); err != nil {
			return false, fmt.Errorf("unliking loop: %w", err)
		}
		return false, nil
	}

	if err := s.loopRepo.Like(ctx, loopID, userID); err != nil {
		return false, fmt.Errorf("liking loop: %w", err)
	}
	return true, nil
}

func (s *LoopService) UpdateCaption(ctx context.Context, loopID, userID uuid.UUID, caption string) (*domain.Loop, error) {
	loop, err := s.loopRepo.GetByID(ctx, loopID)
	if err != nil {
		return nil, err
	}
	if loop == nil {
		return nil, ErrLoopNotFound
	}
	if loop.AuthorID != userID {
		return nil, ErrNotLoopAuthor
	}

	loop.Caption = caption
	if err := s.loopRepo.Update(ctx, loop); err != nil {
		return nil, fmt.Errorf("updating loop: %w", err)
	}
	return loop, nil
}

// Delete removes the loop; its comments go with it via the storage
// layer's cascade.
func (s *LoopService) Delete(ctx context.Context, loopID, userID uuid.UUID) error {
	loop, err := s.loopRepo.GetByID(ctx, loopID)
	if err != nil {
		return err
	}
	if loop == nil {
		return ErrLoopNotFound
	}
	if loop.AuthorID != userID {
		return ErrNotLoopAuthor
	}

	if err := s.loopRepo.Delete(ctx, loopID); err != nil {
		return fmt.Errorf("deleting loop: %w", err)
	}
	return nil
}

func (s *LoopService) AddComment(ctx context.Context, loopID, authorID uuid.UUID, body string) (*domain.Comment, error) {
	if body == "" {
		return nil, ErrEmptyComment
	}

	loop, err := s.loopRepo.GetByID(ctx, loopID)
	if err != nil {
		return nil, err
	}
	if loop == nil {
		return nil, ErrLoopNotFound
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		AuthorID:  authorID,
		LoopID:    &loopID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

func (s *LoopService) ListComments(ctx context.Context, loopID uuid.UUID) ([]domain.Comment, error) {
	loop, err := s.loopRepo.GetByID(ctx, loopID)
	if err != nil {
		return nil, err
	}
	if loop == nil {
		return nil, ErrLoopNotFound
	}

	comments, err := s.commentRepo.ListByLoop(ctx, loopID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

func (s *LoopService) DeleteComment(ctx context.Context, loopID, commentID, userID uuid.UUID) error {
	loop, err := s.loopRepo.GetByID(ctx, loopID)
	if err != nil {
		return err
	}
	if loop == nil {
		return ErrLoopNotFound
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.LoopID == nil || *comment.LoopID != loopID {
		return ErrCommentNotFound
	}

	if comment.AuthorID != userID && loop.AuthorID != userID {
		return ErrNotCommentOwner
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}
