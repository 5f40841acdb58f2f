package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/models"
)

// NominatimClient OpenStreetMap Nominatim 正向地理编码客户端
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger

	// 缓存：避免重复请求相同地址
	cache   map[string]*models.Coordinates
	cacheMu sync.RWMutex

	// Nominatim 请求限流（每秒最多 1 次）
	lastRequest time.Time
	requestMu   sync.Mutex
}

// nominatimResult Nominatim /search 响应条目（lat/lon 为字符串）
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimClient 创建 Nominatim 客户端。
// userAgent 必填：Nominatim 使用政策要求每个客户端带可识别的 User-Agent
func NewNominatimClient(baseURL, userAgent string, logger *zap.Logger) *NominatimClient {
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
		cache:  make(map[string]*models.Coordinates),
	}
}

// Geocode 地址查询，返回第一条结果的坐标；无结果或失败都返回 nil
func (c *NominatimClient) Geocode(ctx context.Context, query string) *models.Coordinates {
	// 检查缓存
	c.cacheMu.RLock()
	if coords, ok := c.cache[query]; ok {
		c.cacheMu.RUnlock()
		return coords
	}
	c.cacheMu.RUnlock()

	coords, err := c.search(ctx, query)
	if err != nil {
		// 失败按"无结果"处理，不向上抛错
		c.logger.Warn("Geocoding failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	if coords == nil {
		c.logger.Debug("Geocoding returned no match", zap.String("query", query))
		return nil
	}

	// 存入缓存
	c.cacheMu.Lock()
	c.cache[query] = coords
	// 限制缓存大小（简单策略：超过 1000 条清空）
	if len(c.cache) > 1000 {
		c.cache = make(map[string]*models.Coordinates)
		c.cache[query] = coords
	}
	c.cacheMu.Unlock()

	c.logger.Debug("Geocoded address",
		zap.String("query", query),
		zap.Float64("lat", coords.Lat),
		zap.Float64("lng", coords.Lng))

	return coords
}

// search 执行一次 /search 请求
func (c *NominatimClient) search(ctx context.Context, query string) (*models.Coordinates, error) {
	// Nominatim 限流：每秒最多 1 次请求
	c.requestMu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < time.Second {
		time.Sleep(time.Second - elapsed)
	}
	c.lastRequest = time.Now()
	c.requestMu.Unlock()

	apiURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=1",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Nominatim 要求设置 User-Agent
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim api returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lon %q: %w", results[0].Lon, err)
	}

	return &models.Coordinates{Lat: lat, Lng: lng}, nil
}

// ClearCache 清空缓存
func (c *NominatimClient) ClearCache() {
	c.cacheMu.Lock()
	c.cache = make(map[string]*models.Coordinates)
	c.cacheMu.Unlock()
}

// CacheSize 获取缓存大小
func (c *NominatimClient) CacheSize() int {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	return len(c.cache)
}
