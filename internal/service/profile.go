package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/api/backend"
	"github.com/langchou/parkpic/internal/models"
	"github.com/langchou/parkpic/internal/session"
)

// ProfileService 用户档案维护
type ProfileService struct {
	api      *backend.Client
	store    *session.Store
	uploader AssetUploader
	logger   *zap.Logger
}

// NewProfileService 创建档案服务
func NewProfileService(api *backend.Client, store *session.Store, uploader AssetUploader, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		api:      api,
		store:    store,
		uploader: uploader,
		logger:   logger,
	}
}

// Update 部分更新档案：提交后端成功后把同一份 patch 合并进本地会话
func (s *ProfileService) Update(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	snapshot := s.store.Snapshot()
	if !snapshot.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	user, err := s.api.UpdateUser(ctx, snapshot.User.ID, patch)
	if err != nil {
		return nil, err
	}

	s.store.UpdateUser(patch)
	return user, nil
}

// UpdateAvatar 上传新头像并更新档案，返回头像 URL
func (s *ProfileService) UpdateAvatar(ctx context.Context, imageRef string) (string, error) {
	if imageRef == "" {
		return "", ErrMissingFields
	}

	url, err := resolveAsset(ctx, s.uploader, imageRef)
	if err != nil {
		return "", err
	}

	if _, err := s.Update(ctx, models.UserPatch{Avatar: models.StringPtr(url)}); err != nil {
		return "", err
	}

	s.logger.Info("Avatar updated", zap.String("url", url))
	return url, nil
}
