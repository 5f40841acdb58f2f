package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/api/backend"
	"github.com/langchou/parkpic/internal/models"
)

func TestAuthLogin(t *testing.T) {
	e := newEnv(t)
	e.mock.SeedUser(models.User{ID: "1", Name: "Alice", Email: "alice@example.com", Role: "pic"}, "alice@example.com", "secret1")

	svc := NewAuthService(e.api, e.store, e.uploader, zap.NewNop())

	user, err := svc.Login(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "pic", user.Role)

	// 会话已写入，后续认证接口可用
	require.True(t, e.store.Snapshot().LoggedIn())
	me, err := e.api.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", me.ID)
}

func TestAuthLoginBadCredentials(t *testing.T) {
	e := newEnv(t)
	e.mock.SeedUser(models.User{ID: "1", Email: "alice@example.com"}, "alice@example.com", "secret1")

	svc := NewAuthService(e.api, e.store, e.uploader, zap.NewNop())

	_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.False(t, e.store.Snapshot().LoggedIn())
}

func TestAuthLoginMissingFields(t *testing.T) {
	e := newEnv(t)
	svc := NewAuthService(e.api, e.store, e.uploader, zap.NewNop())

	_, err := svc.Login(context.Background(), "", "secret1")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Login(context.Background(), "alice@example.com", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestAuthRegister(t *testing.T) {
	e := newEnv(t)
	svc := NewAuthService(e.api, e.store, e.uploader, zap.NewNop())

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Number:   "9000000002",
		Password: "secret2",
		Role:     "vendor",
		City:     "Pune",
		// 本地路径上传，已有 URL 原样透传
		AvatarRef:    "avatar.png",
		AadharImgRef: "https://cdn.example.com/existing/aadhaar.jpg",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "https://cdn.example.com/avatar.png", user.Avatar)
	assert.Equal(t, "https://cdn.example.com/existing/aadhaar.jpg", user.AadharImg)
	assert.Equal(t, []string{"avatar.png"}, e.uploader.uploaded())

	// 注册成功即登录
	require.True(t, e.store.Snapshot().LoggedIn())

	// 新凭据可以重新登录
	e.store.Logout()
	_, err = svc.Login(context.Background(), "bob@example.com", "secret2")
	require.NoError(t, err)
}

func TestAuthRegisterMissingFields(t *testing.T) {
	e := newEnv(t)
	svc := NewAuthService(e.api, e.store, e.uploader, zap.NewNop())

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Bob"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestAuthLogout(t *testing.T) {
	e := newEnv(t)
	e.loginAs(models.User{ID: "1", Email: "alice@example.com"})

	svc := NewAuthService(e.api, e.store, e.uploader, zap.NewNop())
	svc.Logout()

	assert.False(t, e.store.Snapshot().LoggedIn())
}

func TestExpiredTokenClearsSession(t *testing.T) {
	e := newEnv(t)
	e.mock.SeedUser(models.User{ID: "1", Email: "alice@example.com"}, "alice@example.com", "secret1")
	// 会话里放一个后端不认的 token
	e.store.Login(&models.User{ID: "1"}, "bogus-token", "")

	_, err := e.api.Me(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.ErrUnauthorized))
	assert.False(t, e.store.Snapshot().LoggedIn())
}
