package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/langchou/parkpic/internal/models"
)

// Login 密码登录
func (c *Client) Login(ctx context.Context, identifier, password string) (*AuthData, error) {
	payload := LoginRequest{
		Identifier: identifier,
		Password:   password,
		AuthMethod: "password",
	}

	body, err := c.Post(ctx, EndpointLogin, payload)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var resp AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("login failed: %s", resp.Message)
	}

	return &resp.Data, nil
}

// Register 注册（图片字段需是已上传完成的 URL）
func (c *Client) Register(ctx context.Context, payload RegisterRequest) (*AuthData, error) {
	body, err := c.Post(ctx, EndpointRegister, payload)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	var resp AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode register response: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("register failed: %s", resp.Message)
	}

	return &resp.Data, nil
}

// Me 获取当前登录用户
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	body, err := c.Get(ctx, EndpointMe)
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}

	var resp struct {
		Success bool        `json:"success"`
		Data    models.User `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}

	return &resp.Data, nil
}
