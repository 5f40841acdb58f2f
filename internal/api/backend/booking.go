package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/langchou/parkpic/internal/models"
)

// Dashboard 获取 PIC 仪表盘聚合数据
func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	body, err := c.Get(ctx, EndpointPICDashboard)
	if err != nil {
		return nil, fmt.Errorf("get dashboard: %w", err)
	}

	var resp struct {
		Success bool             `json:"success"`
		Message string           `json:"message"`
		Data    models.Dashboard `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode dashboard: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("get dashboard failed: %s", resp.Message)
	}

	return &resp.Data, nil
}

// ConfirmPickup 用 OTP 确认取车
func (c *Client) ConfirmPickup(ctx context.Context, bookingID int64, otp string) error {
	body, err := c.Post(ctx, EndpointConfirmPickup, confirmPickupPayload{
		BookingID: bookingID,
		OTPCode:   otp,
	})
	if err != nil {
		return fmt.Errorf("confirm pickup %d: %w", bookingID, err)
	}

	var resp StatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode confirm pickup response: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("confirm pickup %d failed: %s", bookingID, resp.Message)
	}
	return nil
}
