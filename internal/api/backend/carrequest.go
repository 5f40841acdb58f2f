package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/langchou/parkpic/internal/models"
)

// AssignedRequests 获取分配到当前停车场的车辆请求。
// 该接口的包裹形态在后端不同版本间不一致，未识别的形态返回空列表（见 unwrapList）
func (c *Client) AssignedRequests(ctx context.Context) ([]models.CarRequest, error) {
	body, err := c.Get(ctx, EndpointRequestsAssigned)
	if err != nil {
		return nil, fmt.Errorf("list assigned requests: %w", err)
	}

	raw := unwrapList(body, c.logger)
	if raw == nil {
		return []models.CarRequest{}, nil
	}

	var requests []models.CarRequest
	if err := json.Unmarshal(raw, &requests); err != nil {
		return nil, fmt.Errorf("decode assigned requests: %w", err)
	}
	return requests, nil
}

// ApproveRequest 审批通过：将请求与已创建的车辆绑定
func (c *Client) ApproveRequest(ctx context.Context, id, carID int64) error {
	body, err := c.Put(ctx, withID(EndpointRequestApprove, id), approvePayload{CarID: carID})
	if err != nil {
		return fmt.Errorf("approve request %d: %w", id, err)
	}

	var resp StatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode approve response: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("approve request %d failed: %s", id, resp.Message)
	}
	return nil
}

// DenyRequest 审批拒绝，必须携带拒绝原因
func (c *Client) DenyRequest(ctx context.Context, id int64, reason string) error {
	body, err := c.Put(ctx, withID(EndpointRequestDeny, id), denyPayload{DenialReason: reason})
	if err != nil {
		return fmt.Errorf("deny request %d: %w", id, err)
	}

	var resp StatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode deny response: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("deny request %d failed: %s", id, resp.Message)
	}
	return nil
}
