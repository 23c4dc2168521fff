package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type MockSocialAPI struct {
	mock.Mock
}

func (m *MockSocialAPI) List(ctx context.Context, storeID string) ([]domain.SocialLink, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SocialLink), args.Error(1)
}

func (m *MockSocialAPI) Upsert(ctx context.Context, storeID string, payload upstream.SocialLinkPayload) (*domain.SocialLink, error) {
	args := m.Called(ctx, storeID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SocialLink), args.Error(1)
}

func (m *MockSocialAPI) Delete(ctx context.Context, storeID, socialID string) error {
	args := m.Called(ctx, storeID, socialID)
	return args.Error(0)
}

func merchantSession() *auth.Session {
	session := auth.NewSession()
	session.Set(domain.Identity{UserID: "u-1", UserType: domain.UserMerchant, StoreID: "s-1"})
	return session
}

func TestService_List_EmptyIsNotAnError(t *testing.T) {
	api := new(MockSocialAPI)
	api.On("List", mock.Anything, "s-1").Return(nil, nil)

	service := NewService(api, merchantSession())
	links, err := service.List(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, links)
	assert.Empty(t, links)
}

func TestService_Upsert_NormalizesPlatform(t *testing.T) {
	api := new(MockSocialAPI)
	api.On("Upsert", mock.Anything, "s-1", upstream.SocialLinkPayload{
		Platform: "instagram",
		URL:      "https://instagram.com/flowercorner",
	}).Return(&domain.SocialLink{ID: "soc-1", Platform: "instagram"}, nil)

	service := NewService(api, merchantSession())
	link, err := service.Upsert(context.Background(), UpsertRequest{
		Platform: "  Instagram ",
		URL:      "https://instagram.com/flowercorner",
	})

	assert.NoError(t, err)
	assert.Equal(t, "soc-1", link.ID)
}

func TestService_Upsert_UnknownPlatform(t *testing.T) {
	api := new(MockSocialAPI)

	service := NewService(api, merchantSession())
	_, err := service.Upsert(context.Background(), UpsertRequest{
		Platform: "myspace",
		URL:      "https://myspace.com/flowercorner",
	})

	assert.ErrorIs(t, err, ErrUnknownPlatform)
	api.AssertNotCalled(t, "Upsert")
}

func TestService_Delete_UnknownID(t *testing.T) {
	api := new(MockSocialAPI)
	api.On("Delete", mock.Anything, "s-1", "soc-9").
		Return(&upstream.APIError{Status: 404, Code: "NOT_FOUND", Message: "gone"})

	service := NewService(api, merchantSession())
	err := service.Delete(context.Background(), "soc-9")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_NoSession(t *testing.T) {
	service := NewService(new(MockSocialAPI), auth.NewSession())

	_, err := service.List(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoSession)
}
