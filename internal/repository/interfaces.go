package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vybe-social/vybe/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Search(ctx context.Context, query string) ([]domain.UserSummary, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateProfileImg(ctx context.Context, id uuid.UUID, url string) error
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error)
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListFeed(ctx context.Context) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, postID, userID uuid.UUID) error
	Unlike(ctx context.Context, postID, userID uuid.UUID) error
	HasLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error)
}

type LoopRepository interface {
	Create(ctx context.Context, loop *domain.Loop) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loop, error)
	List(ctx context.Context) ([]domain.Loop, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Loop, error)
	Update(ctx context.Context, loop *domain.Loop) error
	Delete(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, loopID, userID uuid.UUID) error
	Unlike(ctx context.Context, loopID, userID uuid.UUID) error
	HasLiked(ctx context.Context, loopID, userID uuid.UUID) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error)
	ListByLoop(ctx context.Context, loopID uuid.UUID) ([]domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error)
	ListActive(ctx context.Context) ([]domain.Story, error)
	ListActiveByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Story, error)
	Update(ctx context.Context, story *domain.Story) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddView(ctx context.Context, storyID, userID uuid.UUID) error
}

type ChatRepository interface {
	// CreateConversation inserts the conversation unless one already exists
	// for the same pair; either way the pair ends up with exactly one row.
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversationByUsers(ctx context.Context, user1ID, user2ID uuid.UUID) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	GetMessageByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error)
	UpdateMessageBody(ctx context.Context, id uuid.UUID, body string) error
	DeleteMessage(ctx context.Context, id uuid.UUID) error
}
