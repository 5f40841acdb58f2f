package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/langchou/parkpic/internal/api/backend"
	"github.com/langchou/parkpic/internal/models"
	"github.com/langchou/parkpic/internal/session"
)

// AuthService 登录/注册/登出流程
type AuthService struct {
	api      *backend.Client
	store    *session.Store
	uploader AssetUploader
	logger   *zap.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(api *backend.Client, store *session.Store, uploader AssetUploader, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:      api,
		store:    store,
		uploader: uploader,
		logger:   logger,
	}
}

// Login 密码登录并写入会话
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	if identifier == "" || password == "" {
		return nil, ErrMissingFields
	}

	data, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	user := data.User
	s.store.Login(&user, data.Tokens.AccessToken, data.Tokens.RefreshToken)

	s.logger.Info("Logged in",
		zap.String("user", user.ID),
		zap.String("role", user.Role))

	return &user, nil
}

// RegisterInput 注册输入：图片字段可以是本地文件路径，也可以是已有 URL
type RegisterInput struct {
	Name           string
	Email          string
	Number         string
	Password       string
	Age            int
	Role           string
	City           string
	State          string
	Country        string
	Locality       string
	Pincode        int
	AadharNumber   string
	DLNumber       string
	PassportNumber string

	AvatarRef      string
	AadharImgRef   string
	DLImgRef       string
	PassportImgRef string
}

// Register 注册：先并发上传证件/头像图片，再提交注册，成功后写入会话
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Name == "" || input.Email == "" || input.Number == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	var avatarURL, aadharURL, dlURL, passportURL string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		avatarURL, err = resolveAsset(gctx, s.uploader, input.AvatarRef)
		return err
	})
	g.Go(func() (err error) {
		aadharURL, err = resolveAsset(gctx, s.uploader, input.AadharImgRef)
		return err
	})
	g.Go(func() (err error) {
		dlURL, err = resolveAsset(gctx, s.uploader, input.DLImgRef)
		return err
	})
	g.Go(func() (err error) {
		passportURL, err = resolveAsset(gctx, s.uploader, input.PassportImgRef)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("upload register assets: %w", err)
	}

	data, err := s.api.Register(ctx, backend.RegisterRequest{
		Name:           input.Name,
		Email:          input.Email,
		Number:         input.Number,
		Password:       input.Password,
		Age:            input.Age,
		Avatar:         avatarURL,
		Role:           input.Role,
		IsVerified:     false,
		City:           input.City,
		State:          input.State,
		Country:        input.Country,
		Locality:       input.Locality,
		Pincode:        input.Pincode,
		AadharNumber:   input.AadharNumber,
		AadharImg:      aadharURL,
		DLNumber:       input.DLNumber,
		DLImg:          dlURL,
		PassportNumber: input.PassportNumber,
		PassportImg:    passportURL,
	})
	if err != nil {
		return nil, err
	}

	user := data.User
	s.store.Login(&user, data.Tokens.AccessToken, data.Tokens.RefreshToken)

	s.logger.Info("Registered", zap.String("user", user.ID))

	return &user, nil
}

// Logout 清空会话
func (s *AuthService) Logout() {
	s.store.Logout()
	s.logger.Info("Logged out")
}
