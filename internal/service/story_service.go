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
	ErrStoryNotFound  = errors.New("story not found")
	ErrNotStoryAuthor = errors.New("only the story author can perform this action")
)

type StoryService struct {
	storyRepo repository.StoryRepository
}

func NewStoryService(storyRepo repository.StoryRepository) *StoryService {
	return &StoryService{storyRepo: storyRepo}
}

func (s *StoryService) Create(ctx context.Context, authorID uuid.UUID, caption, mediaURL, mediaType string) (*domain.Story, error) {
	story := &domain.Story{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Caption:   caption,
		MediaURL:  mediaURL,
		MediaType: mediaType,
		CreatedAt: time.Now(),
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, fmt.Errorf("creating story: %w", err)
	}
	return story, nil
}

func (s *StoryService) ListActive(ctx context.Context) ([]domain.Story, error) {
	stories, err := s.storyRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if stories == nil {
		stories = []domain.Story{}
	}
	return stories, nil
}

func (s *StoryService) UpdateCaption(ctx context.Context, storyID, userID uuid.UUID, caption string) (*domain.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, ErrStoryNotFound
	}
	if story.AuthorID != userID {
		return nil, ErrNotStoryAuthor
	}

	story.Caption = caption
	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, fmt.Errorf("updating story: %w", err)
	}
	return story, nil
}

func (s *StoryService) Delete(ctx context.Context, storyID, userID uuid.UUID) error {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story == nil {
		return ErrStoryNotFound
	}
	if story.AuthorID != userID {
		return ErrNotStoryAuthor
	}

	if err := s.storyRepo.Delete(ctx, storyID); err != nil {
		return fmt.Errorf("deleting story: %w", err)
	}
	return nil
}

// View records the viewer once; repeated views are a no-op.
func (s *StoryService) View(ctx context.Context, storyID, userID uuid.UUID) error {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story == nil {
		return ErrStoryNotFound
	}

	if err := s.storyRepo.AddView(ctx, storyID, userID); err != nil {
		return fmt.Errorf("recording story view: %w", err)
	}
	return nil
}
