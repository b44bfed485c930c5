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
	ErrEmptyMessage     = errors.New("message body or media is required")
	ErrCannotChatSelf   = errors.New("cannot message yourself")
	ErrMessageNotFound  = errors.New("message not found")
	ErrNotMessageSender = errors.New("only the message sender can perform this action")
)

// Notifier pushes real-time events to a single connected user. Delivery
// is best-effort: implementations must never return an error and must
// never block the caller on a slow or dead connection.
type Notifier interface {
	NotifyNewMessage(to uuid.UUID, msg *domain.Message)
	NotifyMessageUpdated(to uuid.UUID, msg *domain.Message)
	NotifyMessageDeleted(to uuid.UUID, messageID uuid.UUID)
}

// ChatService drives the message lifecycle: persist first, then push.
// A persistence failure aborts the operation before any push is
// attempted; a failed or skipped push is never surfaced to the caller.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	notifier Notifier
}

func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *ChatService) SetNotifier(n Notifier) {
	s.notifier = n
}

type SendMessageInput struct {
	Body      string
	MediaURL  string
	MediaType string
}

func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, input SendMessageInput) (*domain.Message, error) {
	if input.Body == "" && input.MediaURL == "" {
		return nil, ErrEmptyMessage
	}
	if senderID == receiverID {
		return nil, ErrCannotChatSelf
	}

	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrUserNotFound
	}

	conv, err := s.getOrCreateConversation(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		CreatedAt:      time.Now(),
	}
	if input.Body != "" {
		msg.Body = &input.Body
	}
	if input.MediaURL != "" {
		msg.MediaURL = &input.MediaURL
		msg.MediaType = &input.MediaType
	}

	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(receiverID, msg)
	}

	return msg, nil
}

// getOrCreateConversation is atomic under concurrent first contact from
// both directions: the insert is a no-op on conflict and the re-read
// always lands on the surviving row.
func (s *ChatService) getOrCreateConversation(ctx context.Context, a, b uuid.UUID) (*domain.Conversation, error) {
	u1, u2 := domain.SortUserPair(a, b)

	conv, err := s.chatRepo.GetConversationByUsers(ctx, u1, u2)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	fresh := &domain.Conversation{
		ID:        uuid.New(),
		User1ID:   u1,
		User2ID:   u2,
		CreatedAt: time.Now(),
	}
	if err := s.chatRepo.CreateConversation(ctx, fresh); err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}

	conv, err = s.chatRepo.GetConversationByUsers(ctx, u1, u2)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation vanished after create")
	}
	return conv, nil
}

// GetMessages returns the full ordered history for the pair, or an empty
// slice when no conversation exists yet.
func (s *ChatService) GetMessages(ctx context.Context, userID, otherUserID uuid.UUID) ([]domain.Message, error) {
	u1, u2 := domain.SortUserPair(userID, otherUserID)

	conv, err := s.chatRepo.GetConversationByUsers(ctx, u1, u2)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return []domain.Message{}, nil
	}

	messages, err := s.chatRepo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

func (s *ChatService) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	convs, err := s.chatRepo.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return convs, nil
}

func (s *ChatService) EditMessage(ctx context.Context, userID, messageID uuid.UUID, body string) (*domain.Message, error) {
	msg, err := s.chatRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if msg.SenderID != userID {
		return nil, ErrNotMessageSender
	}

	if err := s.chatRepo.UpdateMessageBody(ctx, messageID, body); err != nil {
		return nil, fmt.Errorf("updating message: %w", err)
	}
	msg.Body = &body

	if s.notifier != nil {
		s.notifier.NotifyMessageUpdated(msg.ReceiverID, msg)
	}

	return msg, nil
}

func (s *ChatService) DeleteMessage(ctx context.Context, userID, messageID uuid.UUID) error {
	msg, err := s.chatRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrMessageNotFound
	}
	if msg.SenderID != userID {
		return ErrNotMessageSender
	}

	if err := s.chatRepo.DeleteMessage(ctx, messageID); err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyMessageDeleted(msg.ReceiverID, messageID)
	}

	return nil
}
