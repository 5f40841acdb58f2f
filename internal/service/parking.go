package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/langchou/parkpic/internal/api/backend"
	"github.com/langchou/parkpic/internal/api/geocoder"
	"github.com/langchou/parkpic/internal/models"
)

// ParkingService 停车场入驻审批流程
type ParkingService struct {
	api      *backend.Client
	uploader AssetUploader
	geocoder geocoder.Geocoder
	logger   *zap.Logger
}

// NewParkingService 创建停车场服务
func NewParkingService(api *backend.Client, uploader AssetUploader, geo geocoder.Geocoder, logger *zap.Logger) *ParkingService {
	return &ParkingService{
		api:      api,
		uploader: uploader,
		geocoder: geo,
		logger:   logger,
	}
}

// ParkingApprovalInput 入驻申请输入
type ParkingApprovalInput struct {
	Name     string
	Locality string
	City     string
	State    string
	Country  string
	Pincode  int
	Capacity int

	MainImageRef string
	ImageRefs    []string

	// 已有坐标可以直接传入，跳过地理编码
	Coordinates *models.Coordinates
}

// AddressQuery 组合用于地理编码的地址串
func (in ParkingApprovalInput) AddressQuery() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{in.Locality, in.City, in.State, in.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if in.Pincode != 0 {
		parts = append(parts, strconv.Itoa(in.Pincode))
	}
	return strings.Join(parts, ", ")
}

// SubmitApproval 提交入驻申请：地址解析出坐标 -> 并发上传图片 -> 提交。
// 地理编码拿不到坐标时直接阻止提交（校验失败，不发网络请求）
func (s *ParkingService) SubmitApproval(ctx context.Context, input ParkingApprovalInput) (*backend.StatusResponse, error) {
	if input.Name == "" || input.City == "" || input.MainImageRef == "" {
		return nil, ErrMissingFields
	}

	coords := input.Coordinates
	if coords == nil {
		coords = s.geocoder.Geocode(ctx, input.AddressQuery())
	}
	if coords == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCoordinates, input.AddressQuery())
	}

	var mainURL string
	imageURLs := make([]string, len(input.ImageRefs))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		mainURL, err = resolveAsset(gctx, s.uploader, input.MainImageRef)
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
		return nil, fmt.Errorf("upload parking assets: %w", err)
	}

	resp, err := s.api.SubmitParkingApproval(ctx, models.ParkingApprovalRequest{
		ParkingName: input.Name,
		Locality:    input.Locality,
		City:        input.City,
		State:       input.State,
		Country:     input.Country,
		Pincode:     input.Pincode,
		Capacity:    input.Capacity,
		MainImg:     mainURL,
		Images:      imageURLs,
		Lat:         coords.Lat,
		Lng:         coords.Lng,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Parking approval submitted",
		zap.String("name", input.Name),
		zap.Float64("lat", coords.Lat),
		zap.Float64("lng", coords.Lng))

	return resp, nil
}
