package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/internal/models/request_models"
	"voyago/pkg/utils"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newAccountFixture() (AccountServiceInterface, *fakeAccountRepo, *fakeObjectStore, *utils.TokenIssuer) {
	repo := newFakeAccountRepo()
	store := newFakeObjectStore()
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	return NewAccountService(repo, tokens, store, nil), repo, store, tokens
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	svc, _, _, tokens := newAccountFixture()
	ctx := context.Background()

	acc, err := svc.Register(ctx, request_models.SignUpRequest{DisplayName: " Asha ", Email: " Asha@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", acc.Email)
	assert.Equal(t, "Asha", acc.DisplayName)

	_, err = svc.Register(ctx, request_models.SignUpRequest{DisplayName: "Other", Email: "asha@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	login, err := svc.Login(ctx, request_models.LoginRequest{Email: "ASHA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), login.ExpiresIn)

	claims, err := tokens.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, claims.Subject)
	assert.Equal(t, acc.ID, claims.UserID)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "asha@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAccountService_Profile(t *testing.T) {
	svc, _, store, _ := newAccountFixture()
	ctx := context.Background()

	acc, err := svc.Register(ctx, request_models.SignUpRequest{DisplayName: "Asha", Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, acc.ID, request_models.UpdateProfileRequest{DisplayName: "Asha R"})
	require.NoError(t, err)
	assert.Equal(t, "Asha R", updated.DisplayName)

	profile, err := svc.Profile(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha R", profile.DisplayName)

	withAvatar, err := svc.UploadAvatar(ctx, acc.ID, pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(withAvatar.AvatarURL, "https://storage.example.test/bucket/avatars/"+acc.ID+"?v="))
	assert.Equal(t, "image/png", store.types["avatars/"+acc.ID])

	_, err = svc.UploadAvatar(ctx, acc.ID, []byte("just some text"))
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	_, err = svc.UploadAvatar(ctx, acc.ID, make([]byte, MaxAvatarBytes+1))
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.Profile(ctx, uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
	_, err = svc.Profile(ctx, "")
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
}

func TestAccountService_AvatarWithoutStorage(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, utils.NewTokenIssuer("s", time.Hour), nil, nil)
	ctx := context.Background()

	acc, err := svc.Register(ctx, request_models.SignUpRequest{DisplayName: "Asha", Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.UploadAvatar(ctx, acc.ID, pngHeader)
	assert.ErrorIs(t, err, utils.ErrStorageUnavailable)
}
