package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type MockChatAPI struct {
	mock.Mock
}

func (m *MockChatAPI) Conversations(ctx context.Context, limit, offset int) ([]domain.Conversation, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *MockChatAPI) Messages(ctx context.Context, conversationID string, limit int, beforeID string) ([]domain.Message, bool, error) {
	args := m.Called(ctx, conversationID, limit, beforeID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Message), args.Bool(1), args.Error(2)
}

func (m *MockChatAPI) Send(ctx context.Context, conversationID, content string) (*domain.Message, error) {
	args := m.Called(ctx, conversationID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockChatAPI) MarkRead(ctx context.Context, conversationID string) (int, error) {
	args := m.Called(ctx, conversationID)
	return args.Int(0), args.Error(1)
}

type MockRealtime struct {
	mock.Mock
}

func (m *MockRealtime) JoinConversation(conversationID string) error {
	args := m.Called(conversationID)
	return args.Error(0)
}

func (m *MockRealtime) LeaveConversation(conversationID string) error {
	args := m.Called(conversationID)
	return args.Error(0)
}

func (m *MockRealtime) HandleTyping(conversationID string) { m.Called(conversationID) }

func (m *MockRealtime) IsOnline(userID string) bool {
	args := m.Called(userID)
	return args.Bool(0)
}

func (m *MockRealtime) TypingIn(conversationID string) []string {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func merchantSession() *auth.Session {
	session := auth.NewSession()
	session.Set(domain.Identity{UserID: "u-1", UserType: domain.UserMerchant, StoreID: "s-1"})
	return session
}

func TestService_Conversations_DecoratedWithPresence(t *testing.T) {
	api := new(MockChatAPI)
	rt := new(MockRealtime)

	api.On("Conversations", mock.Anything, 20, 0).Return([]domain.Conversation{
		{ID: "conv-1", Customer: &domain.Party{ID: "cust-1", Name: "Aizhan"}},
		{ID: "conv-2", Customer: &domain.Party{ID: "cust-2", Name: "Dana"}},
	}, nil)
	rt.On("IsOnline", "cust-1").Return(true)
	rt.On("IsOnline", "cust-2").Return(false)
	rt.On("TypingIn", "conv-1").Return([]string{"cust-1"})
	rt.On("TypingIn", "conv-2").Return(nil)

	service := NewService(api, rt, merchantSession())
	views, err := service.Conversations(context.Background(), 0, 0)

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.True(t, views[0].CustomerOnline)
	assert.Equal(t, []string{"cust-1"}, views[0].Typing)
	assert.False(t, views[1].CustomerOnline)
}

func TestService_Messages_UnknownConversation(t *testing.T) {
	api := new(MockChatAPI)
	api.On("Messages", mock.Anything, "conv-9", 50, "").
		Return(nil, false, &upstream.APIError{Status: 404, Code: "NOT_FOUND", Message: "gone"})

	service := NewService(api, new(MockRealtime), merchantSession())
	_, err := service.Messages(context.Background(), "conv-9", 0, "")

	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestService_Send_TrimsAndRejectsEmpty(t *testing.T) {
	api := new(MockChatAPI)
	api.On("Send", mock.Anything, "conv-1", "on my way").
		Return(&domain.Message{ID: "m-1", Content: "on my way"}, nil)

	service := NewService(api, new(MockRealtime), merchantSession())

	msg, err := service.Send(context.Background(), "conv-1", "  on my way  ")
	assert.NoError(t, err)
	assert.Equal(t, "m-1", msg.ID)

	_, err = service.Send(context.Background(), "conv-1", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	api.AssertNumberOfCalls(t, "Send", 1)
}

func TestService_TypingForwardsToSocket(t *testing.T) {
	rt := new(MockRealtime)
	rt.On("HandleTyping", "conv-1").Return()

	service := NewService(new(MockChatAPI), rt, merchantSession())
	assert.NoError(t, service.Typing("conv-1"))
	rt.AssertCalled(t, "HandleTyping", "conv-1")
}

func TestService_JoinLeave(t *testing.T) {
	rt := new(MockRealtime)
	rt.On("JoinConversation", "conv-1").Return(nil)
	rt.On("LeaveConversation", "conv-1").Return(nil)

	service := NewService(new(MockChatAPI), rt, merchantSession())
	assert.NoError(t, service.Join("conv-1"))
	assert.NoError(t, service.Leave("conv-1"))
	rt.AssertExpectations(t)
}

func TestService_NoSession(t *testing.T) {
	service := NewService(new(MockChatAPI), new(MockRealtime), auth.NewSession())

	_, err := service.Conversations(context.Background(), 10, 0)
	assert.ErrorIs(t, err, auth.ErrNoSession)

	err = service.Typing("conv-1")
	assert.ErrorIs(t, err, auth.ErrNoSession)
}
