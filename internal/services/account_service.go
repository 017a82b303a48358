package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/repositories"
	"voyago/pkg/utils"
)

const MaxAvatarBytes = 5 << 20

var avatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

type AccountServiceInterface interface {
	Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.AccountResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	Profile(ctx context.Context, userID string) (*response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, userID string, req request_models.UpdateProfileRequest) (*response_models.AccountResponse, error)
	// UploadAvatar overwrites avatars/{userID}; data is sniffed, the client's content type is not trusted.
	UploadAvatar(ctx context.Context, userID string, data []byte) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      *utils.TokenIssuer
	store       ObjectStore
	logger      *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenIssuer, store ObjectStore, logger *zap.Logger) AccountServiceInterface {
	if store == nil {
		store = disabledObjectStore{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		store:       store,
		logger:      logger,
	}
}

func toAccountResponse(a *db_models.Account) *response_models.AccountResponse {
	return &response_models.AccountResponse{
		ID:          a.ID.String(),
		DisplayName: a.DisplayName,
		Email:       a.Email,
		AvatarURL:   a.AvatarURL,
		CreatedAt:   a.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.DisplayName)
	if email == "" || name == "" || len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: display name, email and a password of at least 6 characters are required", utils.ErrInvalidInput)
	}

	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, dbError("find account", err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &db_models.Account{
		DisplayName:  name,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		a.logger.Error("failed to create account", zap.String("email", email), zap.Error(err))
		return nil, dbError("create account", err)
	}
	return toAccountResponse(account), nil
}

// Login answers ErrInvalidCredentials for unknown emails too, so callers cannot enumerate accounts.
func (a *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, dbError("find account", err)
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(account.ID.String(), account.Email)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresIn: int64(a.tokens.TTL().Seconds()),
	}, nil
}

func (a *AccountService) load(ctx context.Context, userID string) (*db_models.Account, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	account, err := a.accountRepo.FindById(ctx, uid)
	if err != nil {
		return nil, dbError("find account", err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return account, nil
}

func (a *AccountService) Profile(ctx context.Context, userID string) (*response_models.AccountResponse, error) {
	account, err := a.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID string, req request_models.UpdateProfileRequest) (*response_models.AccountResponse, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, fmt.Errorf("%w: display name is required", utils.ErrInvalidInput)
	}
	account, err := a.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := a.accountRepo.UpdateDisplayName(ctx, account.ID, name); err != nil {
		return nil, dbError("update display name", err)
	}
	account.DisplayName = name
	return toAccountResponse(account), nil
}

func (a *AccountService) UploadAvatar(ctx context.Context, userID string, data []byte) (*response_models.AccountResponse, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", utils.ErrInvalidInput)
	}
	if len(data) > MaxAvatarBytes {
		return nil, fmt.Errorf("%w: avatar must be at most 5MB", utils.ErrInvalidInput)
	}
	contentType := http.DetectContentType(data)
	if !avatarTypes[contentType] {
		return nil, fmt.Errorf("%w: avatar must be png, jpeg or webp", utils.ErrInvalidInput)
	}

	account, err := a.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := a.store.Put(ctx, "avatars/"+account.ID.String(), contentType, data)
	if err != nil {
		return nil, err
	}
	url = fmt.Sprintf("%s?v=%d", url, utils.NowUnixMillis())
	if err := a.accountRepo.UpdateAvatarURL(ctx, account.ID, url); err != nil {
		return nil, dbError("update avatar", err)
	}
	account.AvatarURL = url
	return toAccountResponse(account), nil
}
