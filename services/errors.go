package services

import (
	"errors"

	apperrors "hotelbooking/errors"
)

// storeError đổi lỗi của repository sang AppError. what là tên đối tượng
// dùng trong thông báo NotFound.
func storeError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, apperrors.ErrRecordNotFound):
		return apperrors.NotFound(what + " not found")
	case errors.Is(err, apperrors.ErrDuplicateRecord):
		return apperrors.Conflict(what + " already exists")
	default:
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "database error", err)
	}
}
