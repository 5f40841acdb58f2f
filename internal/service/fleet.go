package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/langchou/parkpic/internal/api/backend"
	"github.com/langchou/parkpic/internal/models"
	"github.com/langchou/parkpic/internal/state"
)

// FleetService 车队管理流程：请求审批、车辆入驻、车辆维护
type FleetService struct {
	api      *backend.Client
	uploader AssetUploader
	logger   *zap.Logger
}

// NewFleetService 创建车队服务
func NewFleetService(api *backend.Client, uploader AssetUploader, logger *zap.Logger) *FleetService {
	return &FleetService{
		api:      api,
		uploader: uploader,
		logger:   logger,
	}
}

// PendingRequests 拉取分配到本停车场且等待处理的请求（只保留 PARKING_ASSIGNED）
func (s *FleetService) PendingRequests(ctx context.Context) ([]models.CarRequest, error) {
	requests, err := s.api.AssignedRequests(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]models.CarRequest, 0, len(requests))
	for _, r := range requests {
		if r.Status == models.RequestStatusParkingAssigned {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// OnboardCarInput 车辆入驻输入。图片字段可以是本地路径或已有 URL
type OnboardCarInput struct {
	RequestID int64 // 发起本次入驻的车辆请求
	Name      string
	Number    string
	VendorID  int64
	ParkingID int64
	CatalogID int64
	Color     string
	RCNumber  string

	RCImgRef        string
	PollutionImgRef string
	InsuranceImgRef string
	ImageRefs       []string
}

// OnboardCar 车辆入驻：并发上传证件与照片 -> 新增车辆 -> 用新车辆 id 通过原请求。
// 新增车辆固定以 unavailable 状态创建，由后续流程再上架
func (s *FleetService) OnboardCar(ctx context.Context, request models.CarRequest, input OnboardCarInput) (*models.Car, error) {
	if input.Name == "" || input.Number == "" || input.RCNumber == "" || input.RCImgRef == "" {
		return nil, ErrMissingFields
	}
	if !state.CanApprove(request.Status) {
		return nil, fmt.Errorf("%w: status=%s", ErrNotActionable, request.Status)
	}

	var rcURL, pollutionURL, insuranceURL string
	imageURLs := make([]string, len(input.ImageRefs))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rcURL, err = resolveAsset(gctx, s.uploader, input.RCImgRef)
		return err
	})
	g.Go(func() (err error) {
		pollutionURL, err = resolveAsset(gctx, s.uploader, input.PollutionImgRef)
		return err
	})
	g.Go(func() (err error) {
		insuranceURL, err = resolveAsset(gctx, s.uploader, input.InsuranceImgRef)
		return err
	})
	for i, ref := range input.ImageRefs {
		i, ref := i, ref
		g.Go(func() (err error) {
			imageURLs[i], err = resolveAsset(gctx, s.uploader, ref)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("upload car assets: %w", err)
	}

	car, err := s.api.AddCar(ctx, backend.AddCarPayload{
		Name:         input.Name,
		Number:       input.Number,
		VendorID:     input.VendorID,
		ParkingID:    input.ParkingID,
		Color:        input.Color,
		RCNumber:     input.RCNumber,
		RCImg:        rcURL,
		PollutionImg: pollutionURL,
		InsuranceImg: insuranceURL,
		Images:       imageURLs,
		CatalogID:    input.CatalogID,
		Status:       models.CarStatusUnavailable,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Car added",
		zap.Int64("car", car.ID),
		zap.Int64("request", input.RequestID))

	// 后续动作：用新车辆 id 通过原请求
	if err := s.api.ApproveRequest(ctx, input.RequestID, car.ID); err != nil {
		return car, fmt.Errorf("car %d added but request approval failed: %w", car.ID, err)
	}

	s.logger.Info("Request approved",
		zap.Int64("request", input.RequestID),
		zap.Int64("car", car.ID))

	return car, nil
}

// Approve 审批通过一个请求（车辆已存在的场景）
func (s *FleetService) Approve(ctx context.Context, request models.CarRequest, carID int64) error {
	if !state.CanApprove(request.Status) {
		return fmt.Errorf("%w: status=%s", ErrNotActionable, request.Status)
	}
	return s.api.ApproveRequest(ctx, request.ID, carID)
}

// Deny 审批拒绝，原因必填
func (s *FleetService) Deny(ctx context.Context, request models.CarRequest, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if !state.CanDeny(request.Status) {
		return fmt.Errorf("%w: status=%s", ErrNotActionable, request.Status)
	}
	return s.api.DenyRequest(ctx, request.ID, reason)
}

// Cars 按停车场列出车辆
func (s *FleetService) Cars(ctx context.Context, parkingID int64) ([]models.Car, error) {
	return s.api.CarsByParking(ctx, parkingID)
}

// CarDetails 车辆详情
func (s *FleetService) CarDetails(ctx context.Context, id int64) (*models.CarDetail, error) {
	return s.api.CarDetails(ctx, id)
}

// UpdateCar 更新车辆：images 中的本地路径先上传
func (s *FleetService) UpdateCar(ctx context.Context, id int64, patch models.CarPatch) (*models.Car, error) {
	if patch.Images != nil {
		urls := make([]string, len(*patch.Images))
		g, gctx := errgroup.WithContext(ctx)
		for i, ref := range *patch.Images {
			i, ref := i, ref
			g.Go(func() (err error) {
				urls[i], err = resolveAsset(gctx, s.uploader, ref)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("upload car images: %w", err)
		}
		patch.Images = &urls
	}

	return s.api.UpdateCar(ctx, id, patch)
}
