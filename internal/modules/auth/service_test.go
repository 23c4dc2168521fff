package auth

import (
	"context"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	sessionauth "merchantdesk/internal/auth"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type MockSignInAPI struct {
	mock.Mock
}

func (m *MockSignInAPI) SignIn(ctx context.Context, email, password string) (*upstream.SignInResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.SignInResponse), args.Error(1)
}

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Save(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockTokenStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

func tokenFor(t *testing.T, userType domain.UserType) string {
	t.Helper()
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"user_id": "u-1",
		"type":    string(userType),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return token
}

func TestService_SignIn_MerchantHappyPath(t *testing.T) {
	api := new(MockSignInAPI)
	tokens := new(MockTokenStore)
	session := sessionauth.NewSession()

	api.On("SignIn", mock.Anything, "owner@flowers.kz", "secret1").Return(&upstream.SignInResponse{
		Token: tokenFor(t, domain.UserMerchant),
		Identity: domain.Identity{
			UserID:    "u-1",
			UserType:  domain.UserMerchant,
			StoreID:   "s-1",
			StoreName: "Flower Corner",
		},
	}, nil)
	tokens.On("Save", mock.Anything).Return(nil)

	var started *domain.Identity
	service := NewService(api, tokens, session, func(id domain.Identity) { started = &id }, nil)

	identity, err := service.SignIn(context.Background(), SignInRequest{Email: "owner@flowers.kz", Password: "secret1"})

	assert.NoError(t, err)
	assert.Equal(t, "s-1", identity.StoreID)
	assert.NotNil(t, started)

	current, err := session.Current()
	assert.NoError(t, err)
	assert.Equal(t, "u-1", current.UserID)
	tokens.AssertExpectations(t)
}

func TestService_SignIn_CustomerTokenRejected(t *testing.T) {
	api := new(MockSignInAPI)
	tokens := new(MockTokenStore)
	session := sessionauth.NewSession()

	api.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(&upstream.SignInResponse{
		Token: tokenFor(t, domain.UserCustomer),
	}, nil)

	service := NewService(api, tokens, session, nil, nil)
	_, err := service.SignIn(context.Background(), SignInRequest{Email: "a@b.kz", Password: "secret1"})

	assert.ErrorIs(t, err, ErrWrongRole)
	tokens.AssertNotCalled(t, "Save")
	_, sessionErr := session.Current()
	assert.ErrorIs(t, sessionErr, sessionauth.ErrNoSession)
}

func TestService_SignIn_BadCredentials(t *testing.T) {
	api := new(MockSignInAPI)
	api.On("SignIn", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &upstream.APIError{Status: 401, Code: "UNAUTHORIZED", Message: "bad credentials"})

	service := NewService(api, new(MockTokenStore), sessionauth.NewSession(), nil, nil)
	_, err := service.SignIn(context.Background(), SignInRequest{Email: "a@b.kz", Password: "wrong99"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_SignOut(t *testing.T) {
	tokens := new(MockTokenStore)
	tokens.On("Clear").Return(nil)

	session := sessionauth.NewSession()
	session.Set(domain.Identity{UserID: "u-1", UserType: domain.UserMerchant})

	stopped := false
	service := NewService(new(MockSignInAPI), tokens, session, nil, func() { stopped = true })

	assert.NoError(t, service.SignOut(context.Background()))
	assert.True(t, stopped)

	_, err := session.Current()
	assert.ErrorIs(t, err, sessionauth.ErrNoSession)
	tokens.AssertExpectations(t)
}
