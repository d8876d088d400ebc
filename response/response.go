package response

import (
	"net/http"

	apperrors "hotelbooking/errors"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code int         `json:"code"`
	Mess string      `json:"mess"`
	Data interface{} `json:"data,omitempty"`
}

type ResponseTotal struct {
	Code  int         `json:"code"`
	Mess  string      `json:"mess"`
	Data  interface{} `json:"data,omitempty"`
	Total int         `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
	})
}

// Created trả về 201 cho tài nguyên mới
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Tạo thành công",
		Data: data,
	})
}

func SuccessWithTotal(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, ResponseTotal{
		Code:  1,
		Mess:  "Thành công",
		Total: total,
		Data:  data,
	})
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Lỗi server",
	})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "Chưa xác thực",
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: "Không có quyền truy cập",
	})
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

// StatusFor ánh xạ mã lỗi sang HTTP status
func StatusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict, apperrors.ErrCodeInvalidState, apperrors.ErrCodeUserExists:
		return http.StatusConflict
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeValidation, apperrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeInvalidToken, apperrors.ErrCodeInvalidPassword:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// FromError trả về response theo loại lỗi. Lỗi không phải AppError, hoặc
// lỗi 5xx, không lộ chi tiết ra ngoài.
func FromError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		_ = c.Error(err)
		ServerError(c)
		return
	}

	status := StatusFor(appErr.Code)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		ServerError(c)
		return
	}
	c.JSON(status, Response{
		Code: 0,
		Mess: appErr.Message,
		Data: gin.H{"error": appErr.Code},
	})
}
