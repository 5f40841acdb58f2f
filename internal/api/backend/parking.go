package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/langchou/parkpic/internal/models"
)

// SubmitParkingApproval 提交停车场入驻审批申请
func (c *Client) SubmitParkingApproval(ctx context.Context, payload models.ParkingApprovalRequest) (*StatusResponse, error) {
	body, err := c.Post(ctx, EndpointParkingSubmitApproval, payload)
	if err != nil {
		return nil, fmt.Errorf("submit parking approval: %w", err)
	}

	var resp StatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode parking approval response: %w", err)
	}

	return &resp, nil
}
