package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// 按扩展名归类 Cloudinary 资源类型，未识别的扩展名一律按 raw 处理
var resourceTypes = map[string]string{
	"jpg": "image", "jpeg": "image", "png": "image", "gif": "image",
	"webp": "image", "bmp": "image", "tiff": "image",
	"mp4": "video", "mov": "video", "avi": "video", "mkv": "video", "webm": "video",
	"pdf": "raw", "doc": "raw", "docx": "raw", "xls": "raw", "xlsx": "raw",
	"txt": "raw", "zip": "raw",
}

// ResourceTypeFor 根据文件扩展名推断资源类型
func ResourceTypeFor(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return "raw"
	}
	if rt, ok := resourceTypes[ext]; ok {
		return rt
	}
	return "raw"
}

// Uploader Cloudinary 上传客户端：固定 cloud + 上传预设，返回公开访问的 secure URL
type Uploader struct {
	cld    *cloudinary.Cloudinary
	preset string
	folder string
	logger *zap.Logger
}

// NewUploader 创建上传客户端
func NewUploader(cloudName, apiKey, apiSecret, preset, folder string, logger *zap.Logger) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	return &Uploader{
		cld:    cld,
		preset: preset,
		folder: folder,
		logger: logger,
	}, nil
}

// UploadFile 上传本地文件，返回 secure URL
func (u *Uploader) UploadFile(ctx context.Context, path string) (string, error) {
	return u.upload(ctx, path, path)
}

// UploadBlob 上传内存中的二进制数据，name 用于推断资源类型
func (u *Uploader) UploadBlob(ctx context.Context, name string, data []byte) (string, error) {
	return u.upload(ctx, bytes.NewReader(data), name)
}

// upload 执行上传。任何传输/服务端错误都带上 provider 细节记日志后原样返回，不做重试
func (u *Uploader) upload(ctx context.Context, file interface{}, name string) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		UploadPreset: u.preset,
		Folder:       u.folder,
		ResourceType: ResourceTypeFor(name),
	})
	if err != nil {
		u.logger.Error("Cloudinary upload failed",
			zap.String("name", name),
			zap.Error(err))
		return "", fmt.Errorf("cloudinary upload %s: %w", name, err)
	}

	if result.Error.Message != "" {
		u.logger.Error("Cloudinary upload rejected",
			zap.String("name", name),
			zap.String("detail", result.Error.Message))
		return "", fmt.Errorf("cloudinary upload %s: %s", name, result.Error.Message)
	}

	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload %s: no secure url returned", name)
	}

	u.logger.Debug("Uploaded asset",
		zap.String("name", name),
		zap.String("url", result.SecureURL))

	return result.SecureURL, nil
}
