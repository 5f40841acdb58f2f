package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/api/backend"
	"github.com/langchou/parkpic/internal/models"
)

// DashboardService PIC 仪表盘与取车确认
type DashboardService struct {
	api    *backend.Client
	logger *zap.Logger
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(api *backend.Client, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		api:    api,
		logger: logger,
	}
}

// Fetch 拉取仪表盘数据
func (s *DashboardService) Fetch(ctx context.Context) (*models.Dashboard, error) {
	return s.api.Dashboard(ctx)
}

// ConfirmPickup 确认取车。OTP 在本地先校验（至少 4 位数字），不合法不发请求
func (s *DashboardService) ConfirmPickup(ctx context.Context, bookingID int64, otp string) error {
	if !validOTP(otp) {
		return ErrInvalidOTP
	}

	if err := s.api.ConfirmPickup(ctx, bookingID, otp); err != nil {
		return err
	}

	s.logger.Info("Pickup confirmed", zap.Int64("booking", bookingID))
	return nil
}

// validOTP 至少 4 位且全为 ASCII 数字
func validOTP(otp string) bool {
	if len(otp) < 4 {
		return false
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
