package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vybe-social/vybe/internal/domain"
	"github.com/vybe-social/vybe/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)

type UserService struct {
	userRepo  repository.UserRepository
	postRepo  repository.PostRepository
	loopRepo  repository.LoopRepository
	storyRepo repository.StoryRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	loopRepo repository.LoopRepository,
	storyRepo repository.StoryRepository,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		postRepo:  postRepo,
		loopRepo:  loopRepo,
		storyRepo: storyRepo,
	}
}

// Profile is a user plus everything the profile page resolves: the
// follow graph summaries and the user's own content.
type Profile struct {
	*domain.User
	Followers []domain.UserSummary `json:"followers"`
	Following []domain.UserSummary `json:"following"`
	Posts     []domain.Post        `json:"posts"`
	Loops     []domain.Loop        `json:"loops"`
	Stories   []domain.Story       `json:"stories"`
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	p := &Profile{User: user}

	if p.Followers, err = s.userRepo.ListFollowers(ctx, userID); err != nil {
		return nil, err
	}
	if p.Following, err = s.userRepo.ListFollowing(ctx, userID); err != nil {
		return nil, err
	}
	if p.Posts, err = s.postRepo.ListByAuthor(ctx, userID); err != nil {
		return nil, err
	}
	if p.Loops, err = s.loopRepo.ListByAuthor(ctx, userID); err != nil {
		return nil, err
	}
	if p.Stories, err = s.storyRepo.ListActiveByAuthor(ctx, userID); err != nil {
		return nil, err
	}

	if p.Followers == nil {
		p.Followers = []domain.UserSummary{}
	}
	if p.Following == nil {
		p.Following = []domain.UserSummary{}
	}
	if p.Posts == nil {
		p.Posts = []domain.Post{}
	}
	if p.Loops == nil {
		p.Loops = []domain.Loop{}
	}
	if p.Stories == nil {
		p.Stories = []domain.Story{}
	}
	return p, nil
}

func (s *UserService) Search(ctx context.Context, search string) ([]domain.UserSummary, error) {
	users, err := s.userRepo.Search(ctx, search)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.UserSummary{}
	}
	return users, nil
}

// ToggleFollow follows the target when not yet following, unfollows
// otherwise. Reports whether the caller is following afterwards.
func (s *UserService) ToggleFollow(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	if userID == targetID {
		return false, ErrCannotFollowSelf
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, ErrUserNotFound
	}

	following, err := s.userRepo.IsFollowing(ctx, userID, targetID)
	if err != nil {
		return false, err
	}

	if following {
		if err := s.userRepo.Unfollow(ctx, userID, targetID); err != nil {
			return false, fmt.Errorf("unfollowing: %w", err)
		}
		return false, nil
	}

	if err := s.userRepo.Follow(ctx, userID, targetID); err != nil {
		return false, fmt.Errorf("following: %w", err)
	}
	return true, nil
}

type UpdateProfileInput struct {
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Username != "" && input.Username != user.Username {
		existing, err := s.userRepo.GetByUsername(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrUsernameTaken
		}
		user.Username = input.Username
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfileImg(ctx context.Context, userID uuid.UUID, url string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.UpdateProfileImg(ctx, userID, url); err != nil {
		return nil, fmt.Errorf("updating profile image: %w", err)
	}
	user.ProfileImg = &url
	return user, nil
}
