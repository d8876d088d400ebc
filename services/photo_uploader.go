package services

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// PhotoUploader tải ảnh lên và trả về URL công khai
type PhotoUploader interface {
	Upload(ctx context.Context, file interface{}, folder string) (string, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file interface{}, folder string) (string, error) {
	if u.cld == nil {
		return "", fmt.Errorf("cloudinary is not configured")
	}
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
