package service

import (
	"context"
	"errors"
	"strings"
)

// 服务层校验错误：在发起任何网络调用之前返回
var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrMissingFields  = errors.New("missing required fields")
	ErrReasonRequired = errors.New("denial reason is required")
	ErrNotActionable  = errors.New("request is not in an actionable state")
	ErrNoCoordinates  = errors.New("address could not be geocoded")
	ErrInvalidOTP     = errors.New("otp must be at least 4 digits")
)

// AssetUploader 资源上传抽象（生产实现为 Cloudinary）
type AssetUploader interface {
	UploadFile(ctx context.Context, path string) (string, error)
}

// resolveAsset 已经是 http(s) URL 的引用原样返回，本地路径则先上传；
// 空引用直接返回空串
func resolveAsset(ctx context.Context, uploader AssetUploader, ref string) (string, error) {
	if ref == "" || strings.HasPrefix(ref, "http") {
		return ref, nil
	}
	return uploader.UploadFile(ctx, ref)
}
