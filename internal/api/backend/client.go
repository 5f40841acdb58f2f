package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/session"
)

// 错误定义
var ErrUnauthorized = errors.New("unauthorized")

// APIError 后端返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status=%d message=%s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error: status=%d", e.Status)
}

// Unwrap 401 时匹配 ErrUnauthorized，便于上层 errors.Is 判断
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Client PIC 后端 API 客户端
// 共享一个 http.Client（固定超时），每次发送时从会话存储读取当前 token；
// 收到 401 时先清空会话再把错误返回给调用方（唯一的自动恢复动作，不做 refresh/重试）
type Client struct {
	httpClient *http.Client
	baseURL    string
	store      *session.Store
	logger     *zap.Logger
}

// NewClient 创建后端客户端
func NewClient(baseURL string, timeout time.Duration, store *session.Store, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		store:   store,
		logger:  logger,
	}
}

// Get 发送 GET 请求，返回响应体
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post 发送 POST 请求（body 会被编码为 JSON）
func (c *Client) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put 发送 PUT 请求（body 会被编码为 JSON）
func (c *Client) Put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// do 执行请求：注入 bearer token，统一处理 401 与非 2xx
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// 发送时刻从会话存储读取 token；没有 token 就发匿名请求
	if token := c.store.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// 401：先清空会话，再把原始错误交还调用方
	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("Unauthorized response, clearing session",
			zap.String("method", method),
			zap.String("path", path))
		c.store.Logout()
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: extractMessage(respBody),
			Body:    respBody,
		}
	}

	// 其它错误状态原样透传
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: extractMessage(respBody),
			Body:    respBody,
		}
	}

	return respBody, nil
}

// extractMessage 尽力从响应体中取出人类可读的错误信息
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
