package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 提示消息级别，与前端提示样式一一对应
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelDanger  = "danger"
	LevelSuccess = "success"
)

// Flash 展示给用户的提示消息
type Flash struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Info 普通提示
func Info(text string) Flash { return Flash{Level: LevelInfo, Text: text} }

// Warning 警告提示
func Warning(text string) Flash { return Flash{Level: LevelWarning, Text: text} }

// Danger 错误提示
func Danger(text string) Flash { return Flash{Level: LevelDanger, Text: text} }

// Success 成功提示
func Success(text string) Flash { return Flash{Level: LevelSuccess, Text: text} }

// Response 统一响应结构
type Response struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data,omitempty"`
	Details  string      `json:"details,omitempty"`
	Messages []Flash     `json:"messages,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}, messages ...Flash) {
	c.JSON(http.StatusOK, Response{
		Code:     0,
		Message:  "success",
		Data:     data,
		Messages: messages,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}, messages ...Flash) {
	c.JSON(http.StatusCreated, Response{
		Code:     0,
		Message:  "success",
		Data:     data,
		Messages: messages,
	})
}

// ── 错误响应 ──

// Error 通用错误响应，同时附带一条 danger 提示
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:     code,
		Message:  message,
		Messages: []Flash{Danger(message)},
	})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:     code,
		Message:  message,
		Details:  details,
		Messages: []Flash{Danger(message)},
	})
}

// ErrorWithData 错误响应仍需返回数据时使用（如列表查询失败返回空列表）
func ErrorWithData(c *gin.Context, httpStatus int, code int, message string, data interface{}) {
	c.JSON(httpStatus, Response{
		Code:     code,
		Message:  message,
		Data:     data,
		Messages: []Flash{Danger(message)},
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Conflict 409
func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "服务器内部错误")
}
