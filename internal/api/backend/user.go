package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/langchou/parkpic/internal/models"
)

// Profile 获取当前用户档案
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	body, err := c.Get(ctx, EndpointUserProfile)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var resp struct {
		Success bool        `json:"success"`
		Data    models.User `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	return &resp.Data, nil
}

// UpdateUser 部分更新用户档案。
// 路径模板只做一次 :id 替换（旧客户端存在把 id 拼两遍的缺陷，这里不沿用）
func (c *Client) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	body, err := c.Put(ctx, withIDString(EndpointUserUpdate, id), patch)
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}

	var resp struct {
		Success bool        `json:"success"`
		Message string      `json:"message"`
		Data    models.User `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode update user response: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("update user failed: %s", resp.Message)
	}

	return &resp.Data, nil
}

// GetUserByID 按 id 获取用户
func (c *Client) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	body, err := c.Get(ctx, withIDString(EndpointUserGet, id))
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	var resp struct {
		Success bool        `json:"success"`
		Data    models.User `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	return &resp.Data, nil
}
