package geocoder

import (
	"context"

	"github.com/langchou/parkpic/internal/models"
)

// Geocoder 正向地理编码：把自由文本地址解析成经纬度。
// 约定：查不到或请求失败都返回 nil（显式的"无结果"），不向调用方抛错；
// 是否允许在没有坐标的情况下继续流程由调用方自行决定
type Geocoder interface {
	Geocode(ctx context.Context, query string) *models.Coordinates
}
