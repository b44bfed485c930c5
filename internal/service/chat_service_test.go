package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vybe-social/vybe/internal/domain"
)

type mockChatRepo struct {
	mock.Mock
}

func (m *mockChatRepo) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	return m.Called(ctx, conv).Error(0)
}

func (m *mockChatRepo) GetConversationByUsers(ctx context.Context, user1ID, user2ID uuid.UUID) (*domain.Conversation, error) {
	args := m.Called(ctx, user1ID, user2ID)
	conv, _ := args.Get(0).(*domain.Conversation)
	return conv, args.Error(1)
}

func (m *mockChatRepo) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	convs, _ := args.Get(0).([]domain.Conversation)
	return convs, args.Error(1)
}

func (m *mockChatRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockChatRepo) GetMessageByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	args := m.Called(ctx, id)
	msg, _ := args.Get(0).(*domain.Message)
	return msg, args.Error(1)
}

func (m *mockChatRepo) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID)
	msgs, _ := args.Get(0).([]domain.Message)
	return msgs, args.Error(1)
}

func (m *mockChatRepo) UpdateMessageBody(ctx context.Context, id uuid.UUID, body string) error {
	return m.Called(ctx, id, body).Error(0)
}

func (m *mockChatRepo) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyNewMessage(to uuid.UUID, msg *domain.Message) {
	m.Called(to, msg)
}

func (m *mockNotifier) NotifyMessageUpdated(to uuid.UUID, msg *domain.Message) {
	m.Called(to, msg)
}

func (m *mockNotifier) NotifyMessageDeleted(to uuid.UUID, messageID uuid.UUID) {
	m.Called(to, messageID)
}

func sortedPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	return domain.SortUserPair(a, b)
}

func TestSendMessageRejectsEmpty(t *testing.T) {
	svc := NewChatService(new(mockChatRepo), new(mockUserRepo))

	_, err := svc.SendMessage(context.Background(), uuid.New(), uuid.New(), SendMessageInput{})

	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendMessageRejectsSelf(t *testing.T) {
	svc := NewChatService(new(mockChatRepo), new(mockUserRepo))

	self := uuid.New()
	_, err := svc.SendMessage(context.Background(), self, self, SendMessageInput{Body: "hi"})

	assert.ErrorIs(t, err, ErrCannotChatSelf)
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	userRepo := new(mockUserRepo)
	receiverID := uuid.New()
	userRepo.On("GetByID", mock.Anything, receiverID).Return(nil, nil)

	svc := NewChatService(new(mockChatRepo), userRepo)

	_, err := svc.SendMessage(context.Background(), uuid.New(), receiverID, SendMessageInput{Body: "hi"})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendMessageReusesConversationAndNotifiesReceiver(t *testing.T) {
	senderID := uuid.New()
	receiverID := uuid.New()
	u1, u2 := sortedPair(senderID, receiverID)
	conv := &domain.Conversation{ID: uuid.New(), User1ID: u1, User2ID: u2}

	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, receiverID).Return(&domain.User{ID: receiverID}, nil)

	chatRepo := new(mockChatRepo)
	chatRepo.On("GetConversationByUsers", mock.Anything, u1, u2).Return(conv, nil)
	chatRepo.On("CreateMessage", mock.Anything, mock.AnythingOfType("*domain.Message")).Return(nil)

	notifier := new(mockNotifier)
	notifier.On("NotifyNewMessage", receiverID, mock.AnythingOfType("*domain.Message")).Return()

	svc := NewChatService(chatRepo, userRepo)
	svc.SetNotifier(notifier)

	msg, err := svc.SendMessage(context.Background(), senderID, receiverID, SendMessageInput{Body: "hello"})

	require.NoError(t, err)
	assert.Equal(t, conv.ID, msg.ConversationID)
	assert.Equal(t, senderID, msg.SenderID)
	assert.Equal(t, "hello", *msg.Body)
	chatRepo.AssertNotCalled(t, "CreateConversation", mock.Anything, mock.Anything)
	notifier.AssertCalled(t, "NotifyNewMessage", receiverID, msg)
}

func TestSendMessageCreatesConversationOnFirstContact(t *testing.T) {
	senderID := uuid.New()
	receiverID := uuid.New()
	u1, u2 := sortedPair(senderID, receiverID)
	created := &domain.Conversation{ID: uuid.New(), User1ID: u1, User2ID: u2}

	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, receiverID).Return(&domain.User{ID: receiverID}, nil)

	chatRepo := new(mockChatRepo)
	chatRepo.On("GetConversationByUsers", mock.Anything, u1, u2).Return(nil, nil).Once()
	chatRepo.On("CreateConversation", mock.Anything, mock.AnythingOfType("*domain.Conversation")).Return(nil)
	chatRepo.On("GetConversationByUsers", mock.Anything, u1, u2).Return(created, nil).Once()
	chatRepo.On("CreateMessage", mock.Anything, mock.AnythingOfType("*domain.Message")).Return(nil)

	svc := NewChatService(chatRepo, userRepo)

	msg, err := svc.SendMessage(context.Background(), senderID, receiverID, SendMessageInput{Body: "first"})

	require.NoError(t, err)
	assert.Equal(t, created.ID, msg.ConversationID)
	chatRepo.AssertExpectations(t)
}

func TestSendMessagePersistenceFailureSkipsNotify(t *testing.T) {
	senderID := uuid.New()
	receiverID := uuid.New()
	u1, u2 := sortedPair(senderID, receiverID)

	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, receiverID).Return(&domain.User{ID: receiverID}, nil)

	chatRepo := new(mockChatRepo)
	chatRepo.On("GetConversationByUsers", mock.Anything, u1, u2).Return(&domain.Conversation{ID: uuid.New()}, nil)
	chatRepo.On("CreateMessage", mock.Anything, mock.Anything).Return(errors.New("db down"))

	notifier := new(mockNotifier)

	svc := NewChatService(chatRepo, userRepo)
	svc.SetNotifier(notifier)

	_, err := svc.SendMessage(context.Background(), senderID, receiverID, SendMessageInput{Body: "lost"})

	require.Error(t, err)
	notifier.AssertNotCalled(t, "NotifyNewMessage", mock.Anything, mock.Anything)
}

func TestSendMessageWithoutNotifierStillPersists(t *testing.T) {
	senderID := uuid.New()
	receiverID := uuid.New()
	u1, u2 := sortedPair(senderID, receiverID)

	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, receiverID).Return(&domain.User{ID: receiverID}, nil)

	chatRepo := new(mockChatRepo)
	chatRepo.On("GetConversationByUsers", mock.Anything, u1, u2).Return(&domain.Conversation{ID: uuid.New()}, nil)
	chatRepo.On("CreateMessage", mock.Anything, mock.Anything).Return(nil)

	svc := NewChatService(chatRepo, userRepo)

	_, err := svc.SendMessage(context.Background(), senderID, receiverID, SendMessageInput{Body: "quiet"})

	assert.NoError(t, err)
}

func TestGetMessagesNoConversationReturnsEmpty(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	u1, u2 := sortedPair(userID, otherID)

	chatRepo := new(mockChatRepo)
	chatRepo.On("GetConversationByUsers", mock.Anything, u1, u2).Return(nil, nil)

	svc := NewChatService(chatRepo, new(mockUserRepo))

	msgs, err := svc.GetMessages(context.Background(), userID, otherID)

	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestEditMessageNotFound(t *testing.T) {
	chatRepo := new(mockChatRepo)
	chatRepo.On("GetMessageByID", mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewChatService(chatRepo, new(mockUserRepo))

	_, err := svc.EditMessage(context.Background(), uuid.New(), uuid.New(), "edit")

	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestEditMessageForbiddenForNonSender(t *testing.T) {
	messageID := uuid.New()
	msg := &domain.Message{ID: messageID, SenderID: uuid.New(), ReceiverID: uuid.New()}

	chatRepo := new(mockChatRepo)
	chatRepo.On("GetMessageByID", mock.Anything, messageID).Return(msg, nil)

	svc := NewChatService(chatRepo, new(mockUserRepo))

	_, err := svc.EditMessage(context.Background(), uuid.New(), messageID, "edit")

	assert.ErrorIs(t, err, ErrNotMessageSender)
	chatRepo.AssertNotCalled(t, "UpdateMessageBody", mock.Anything, mock.Anything, mock.Anything)
}

func TestEditMessageNotifiesOtherParticipant(t *testing.T) {
	senderID := uuid.New()
	receiverID := uuid.New()
	messageID := uuid.New()
	old := "old"
	msg := &domain.Message{ID: messageID, SenderID: senderID, ReceiverID: receiverID, Body: &old}

	chatRepo := new(mockChatRepo)
	chatRepo.On("GetMessageByID", mock.Anything, messageID).Return(msg, nil)
	chatRepo.On("UpdateMessageBody", mock.Anything, messageID, "new").Return(nil)

	notifier := new(mockNotifier)
	notifier.On("NotifyMessageUpdated", receiverID, mock.AnythingOfType("*domain.Message")).Return()

	svc := NewChatService(chatRepo, new(mockUserRepo))
	svc.SetNotifier(notifier)

	updated, err := svc.EditMessage(context.Background(), senderID, messageID, "new")

	require.NoError(t, err)
	assert.Equal(t, "new", *updated.Body)
	notifier.AssertCalled(t, "NotifyMessageUpdated", receiverID, updated)
}

func TestDeleteMessageForbiddenForNonSender(t *testing.T) {
	messageID := uuid.New()
	msg := &domain.Message{ID: messageID, SenderID: uuid.New()}

	chatRepo := new(mockChatRepo)
	chatRepo.On("GetMessageByID", mock.Anything, messageID).Return(msg, nil)

	svc := NewChatService(chatRepo, new(mockUserRepo))

	err := svc.DeleteMessage(context.Background(), uuid.New(), messageID)

	assert.ErrorIs(t, err, ErrNotMessageSender)
	chatRepo.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestDeleteMessageNotifiesOtherParticipant(t *testing.T) {
	senderID := uuid.New()
	receiverID := uuid.New()
	messageID := uuid.New()
	msg := &domain.Message{ID: messageID, SenderID: senderID, ReceiverID: receiverID}

	chatRepo := new(mockChatRepo)
	chatRepo.On("GetMessageByID", mock.Anything, messageID).Return(msg, nil)
	chatRepo.On("DeleteMessage", mock.Anything, messageID).Return(nil)

	notifier := new(mockNotifier)
	notifier.On("NotifyMessageDeleted", receiverID, messageID).Return()

	svc := NewChatService(chatRepo, new(mockUserRepo))
	svc.SetNotifier(notifier)

	err := svc.DeleteMessage(context.Background(), senderID, messageID)

	require.NoError(t, err)
	notifier.AssertExpectations(t)
}
