package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"

	// Booking errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeInvalidState  ErrorCode = "INVALID_STATE"
	ErrCodeInconsistency ErrorCode = "INCONSISTENCY"

	// Database errors
	ErrCodeDBError ErrorCode = "DB_ERROR"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is so sánh theo mã lỗi, để errors.Is(err, &AppError{Code: ErrCodeConflict}) hoạt động
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, nil)
}

func InvalidState(message string) *AppError {
	return NewAppError(ErrCodeInvalidState, message, nil)
}

func Validation(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, nil)
}

func Unauthorized(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, nil)
}

// Inconsistency báo rằng booking và lịch giữ chỗ không khớp nhau
func Inconsistency(message string, err error) *AppError {
	return NewAppError(ErrCodeInconsistency, message, err)
}

func Internal(message string, err error) *AppError {
	return NewAppError(ErrCodeDBError, message, err)
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError lấy AppError từ error (kể cả khi đã bị wrap)
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf trả về mã lỗi, hoặc chuỗi rỗng nếu không phải AppError
func CodeOf(err error) ErrorCode {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return ""
}

// HasCode là cách viết gọn của CodeOf(err) == code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

var (
	// Storage errors, trả về từ repository
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrDayTaken        = errors.New("day already reserved")
	ErrStatusChanged   = errors.New("booking status changed concurrently")

	ErrInvalidToken = errors.New("invalid token")
)
