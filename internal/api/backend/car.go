package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/langchou/parkpic/internal/models"
)

// AddCar 新增车辆，返回后端创建的车辆记录
func (c *Client) AddCar(ctx context.Context, payload AddCarPayload) (*models.Car, error) {
	body, err := c.Post(ctx, EndpointCarAdd, payload)
	if err != nil {
		return nil, fmt.Errorf("add car: %w", err)
	}

	var resp struct {
		Success bool       `json:"success"`
		Message string     `json:"message"`
		Data    models.Car `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode add car response: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("add car failed: %s", resp.Message)
	}
	if resp.Data.ID == 0 {
		return nil, fmt.Errorf("add car: no car id in response")
	}

	return &resp.Data, nil
}

// CarsByParking 按停车场列出车辆
func (c *Client) CarsByParking(ctx context.Context, parkingID int64) ([]models.Car, error) {
	body, err := c.Get(ctx, withID(EndpointCarsByParking, parkingID))
	if err != nil {
		return nil, fmt.Errorf("list cars by parking %d: %w", parkingID, err)
	}

	raw := unwrapList(body, c.logger)
	if raw == nil {
		return []models.Car{}, nil
	}

	var cars []models.Car
	if err := json.Unmarshal(raw, &cars); err != nil {
		return nil, fmt.Errorf("decode cars: %w", err)
	}
	return cars, nil
}

// CarDetails 获取车辆详情聚合
func (c *Client) CarDetails(ctx context.Context, id int64) (*models.CarDetail, error) {
	body, err := c.Get(ctx, withID(EndpointCarDetails, id))
	if err != nil {
		return nil, fmt.Errorf("get car %d: %w", id, err)
	}

	var resp struct {
		Success    bool             `json:"success"`
		Message    string           `json:"message"`
		Data       models.CarDetail `json:"data"`
		StatusCode int              `json:"statusCode"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode car detail: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("get car failed: %s", resp.Message)
	}

	return &resp.Data, nil
}

// UpdateCar 部分更新车辆
func (c *Client) UpdateCar(ctx context.Context, id int64, patch models.CarPatch) (*models.Car, error) {
	body, err := c.Put(ctx, withID(EndpointCarUpdate, id), patch)
	if err != nil {
		return nil, fmt.Errorf("update car %d: %w", id, err)
	}

	var resp struct {
		Success bool       `json:"success"`
		Message string     `json:"message"`
		Data    models.Car `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode update car response: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("update car failed: %s", resp.Message)
	}

	return &resp.Data, nil
}
