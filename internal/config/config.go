package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Debug
	Debug bool

	// PIC 后端 API
	APIBaseURL string
	APITimeout time.Duration

	// Cloudinary 资源上传
	CloudinaryCloudName    string
	CloudinaryUploadPreset string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryFolder       string

	// Nominatim 地理编码
	NominatimBaseURL   string
	NominatimUserAgent string

	// 会话存储路径
	SessionFile string
}

func Load() (*Config, error) {
	// 尝试加载 .env 文件（可选）
	_ = godotenv.Load()

	cfg := &Config{
		Debug:                  getEnvBool("DEBUG", false),
		APIBaseURL:             getEnv("PARKPIC_API_URL", "http://localhost:4000/api/v1"),
		APITimeout:             getEnvDuration("PARKPIC_API_TIMEOUT", 10*time.Second),
		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", "dobngibkc"),
		CloudinaryUploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", "images_preset"),
		CloudinaryAPIKey:       getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:       getEnv("CLOUDINARY_FOLDER", "parkpic"),
		NominatimBaseURL:       getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent:     getEnv("NOMINATIM_USER_AGENT", "ParkPic/1.0 (parking fleet client)"),
		SessionFile:            getEnv("SESSION_FILE", defaultSessionFile()),
	}

	return cfg, nil
}

// defaultSessionFile 默认会话文件路径（用户配置目录，取不到则退回当前目录）
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(dir, "parkpic", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
