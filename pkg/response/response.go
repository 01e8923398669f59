package response

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/pkg/apperr"
)

// ==================== 分页 ====================

// Meta 分页元信息
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// BuildMeta 构造分页元信息
func BuildMeta(total int64, page, limit int) *Meta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Meta{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// NormalizePage 规范化分页参数: page >= 1, 1 <= limit <= 100
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// ==================== 成功响应 ====================

// Success 标准成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// SuccessWithMessage 带提示消息的成功响应
func SuccessWithMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "message": message})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data, "message": message})
}

// NoContent 无内容响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated 带分页元信息的成功响应
func Paginated(c *gin.Context, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "meta": meta})
}

// ==================== 错误响应 ====================

// Error 将错误映射为统一错误信封
// AppError 使用自带状态与错误码；GORM 错误做兜底转换；其它一律 500
func Error(c *gin.Context, err error) {
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		writeError(c, appErr.Status, appErr.Code, appErr.Message)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(c, http.StatusNotFound, apperr.CodeNotFound, "找不到指定的資料")
		return
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		writeError(c, http.StatusConflict, apperr.CodeDuplicate, "資料已存在")
		return
	}

	// 非开发模式不暴露内部细节
	msg := "伺服器內部錯誤"
	if os.Getenv("APP_ENV") == "development" {
		msg = err.Error()
	}
	writeError(c, http.StatusInternalServerError, apperr.CodeInternal, msg)
}

// ValidationError 请求参数校验失败
func ValidationError(c *gin.Context, err error) {
	writeError(c, http.StatusBadRequest, apperr.CodeValidation, "請求資料格式錯誤: "+err.Error())
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}
