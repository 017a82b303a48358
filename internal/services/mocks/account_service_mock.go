package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) account(args mock.Arguments) (*response_models.AccountResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.AccountResponse), args.Error(1)
}

func (m *MockAccountService) Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	return m.account(m.Called(ctx, req))
}

func (m *MockAccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.AccountLoginResponse), args.Error(1)
}

func (m *MockAccountService) Profile(ctx context.Context, userID string) (*response_models.AccountResponse, error) {
	return m.account(m.Called(ctx, userID))
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, userID string, req request_models.UpdateProfileRequest) (*response_models.AccountResponse, error) {
	return m.account(m.Called(ctx, userID, req))
}

func (m *MockAccountService) UploadAvatar(ctx context.Context, userID string, data []byte) (*response_models.AccountResponse, error) {
	return m.account(m.Called(ctx, userID, data))
}
