package apperr

import (
	"fmt"
	"net/http"
)

// ==================== 错误码常量 ====================

const (
	CodeNotFound           = "NOT_FOUND"
	CodeStoreNotFound      = "STORE_NOT_FOUND"
	CodeStaffNotFound      = "STAFF_NOT_FOUND"
	CodeAuthUserNotFound   = "AUTH_USER_NOT_FOUND"
	CodeGroupNotFound      = "GROUP_NOT_FOUND"
	CodeTemplateNotFound   = "TEMPLATE_NOT_FOUND"
	CodeDuplicate          = "DUPLICATE_ERROR"
	CodeStoreCodeExists    = "STORE_CODE_EXISTS"
	CodeInvalidReportCodes = "INVALID_REPORT_CODES"
	CodeValidation         = "VALIDATION_ERROR"
	CodeAINotConfigured    = "AI_NOT_CONFIGURED"
	CodeAIRequestFailed    = "AI_REQUEST_FAILED"
	CodeAIParseFailed      = "AI_PARSE_FAILED"
	CodeUnknownAction      = "UNKNOWN_ACTION"
	CodeInternal           = "INTERNAL_ERROR"
	CodeRateLimit          = "RATE_LIMIT"
)

// ==================== 应用错误 ====================

// AppError 带错误码与 HTTP 状态的业务错误
type AppError struct {
	Code    string
	Status  int
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

// New 创建业务错误
func New(code string, status int, message string) *AppError {
	return &AppError{Code: code, Status: status, Message: message}
}

// Wrap 包装底层错误
func Wrap(code string, status int, message string, err error) *AppError {
	return &AppError{Code: code, Status: status, Message: message, Err: err}
}

// ==================== 常用构造 ====================

// NotFound 实体不存在
func NotFound(code, message string) *AppError {
	return New(code, http.StatusNotFound, message)
}

// Conflict 唯一键冲突
func Conflict(code, message string) *AppError {
	return New(code, http.StatusConflict, message)
}

// InvalidReportCodes 报表代码无法解析
func InvalidReportCodes(codes []string) *AppError {
	return New(CodeInvalidReportCodes, http.StatusBadRequest,
		fmt.Sprintf("部分報表代碼不存在: %v", codes))
}

// EntityNotFound 模糊匹配找不到实体
// kind: store / staff
func EntityNotFound(kind, text string) *AppError {
	code := CodeStoreNotFound
	label := "門市"
	if kind == "staff" {
		code = CodeStaffNotFound
		label = "人員"
	}
	return New(code, http.StatusNotFound, fmt.Sprintf("找不到%s：%s", label, text))
}

// AINotConfigured AI 服务未配置
func AINotConfigured() *AppError {
	return New(CodeAINotConfigured, http.StatusServiceUnavailable, "AI 服務未配置")
}

// AIRequestFailed AI 请求失败
func AIRequestFailed(err error) *AppError {
	return Wrap(CodeAIRequestFailed, http.StatusBadGateway, "AI 服務請求失敗", err)
}

// AIParseFailed AI 响应无法解析
func AIParseFailed(err error) *AppError {
	return Wrap(CodeAIParseFailed, http.StatusBadRequest, "AI 無法解析指令", err)
}

// UnknownAction 不支持的动作类型
func UnknownAction() *AppError {
	return New(CodeUnknownAction, http.StatusBadRequest, "無法辨識指令，請試著說得更清楚一點。")
}

// Validation 请求参数错误
func Validation(message string) *AppError {
	return New(CodeValidation, http.StatusBadRequest, message)
}
