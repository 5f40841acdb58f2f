package backend

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"
)

// envelope 后端通用 success 包裹
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	StatusCode int             `json:"statusCode,omitempty"`
}

// unwrapList 把列表从 success 包裹中取出来。
// 后端各接口的包裹层级不一致：有的返回 {data:[...]}，有的返回 {data:{data:[...]}}。
// 这里显式枚举两种已知形态，未知形态回退为空列表并告警，而不是报错
func unwrapList(body []byte, logger *zap.Logger) json.RawMessage {
	var outer envelope
	if err := json.Unmarshal(body, &outer); err != nil {
		logger.Warn("Unexpected response structure: not a success envelope",
			zap.ByteString("body", truncate(body, 512)))
		return nil
	}

	// 形态一：{data: [...]}
	if isJSONArray(outer.Data) {
		return outer.Data
	}

	// 形态二：{data: {data: [...]}}
	var inner envelope
	if err := json.Unmarshal(outer.Data, &inner); err == nil && isJSONArray(inner.Data) {
		return inner.Data
	}

	logger.Warn("Unexpected response structure for list endpoint",
		zap.ByteString("data", truncate(outer.Data, 512)))
	return nil
}

// isJSONArray raw 是否为 JSON 数组
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
