package config

import (
	"github.com/cloudinary/cloudinary-go/v2"
)

// ConnectCloudinary trả nil khi chưa cấu hình CLOUDINARY_URL; upload ảnh
// khi đó trả lỗi thay vì làm hỏng lúc khởi động.
func ConnectCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		return nil, nil
	}
	return cloudinary.NewFromURL(cfg.CloudinaryURL)
}
