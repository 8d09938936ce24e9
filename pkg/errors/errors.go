// Package errors 定义业务错误分类。
//
// 业务层通过 Validation / Conflict / NotFound / Database 构造错误，
// 接口层只需 errors.Is(err, ErrXxx) 判断类别即可映射 HTTP 状态码。
package errors

import "errors"

// 错误类别
var (
	ErrValidation = errors.New("参数校验失败")
	ErrConflict   = errors.New("数据冲突")
	ErrNotFound   = errors.New("资源不存在")
	ErrDatabase   = errors.New("数据库操作失败")
)

// kindError 携带类别与可展示消息的业务错误
type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// Validation 输入格式错误
func Validation(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

// Conflict 唯一性或引用完整性冲突
func Conflict(msg string) error {
	return &kindError{kind: ErrConflict, msg: msg}
}

// NotFound 目标记录不存在
func NotFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

// Database 包装底层数据库错误，原始错误仅用于日志
func Database(cause error) error {
	return &kindError{kind: ErrDatabase, msg: ErrDatabase.Error(), cause: cause}
}

// Message 返回可直接展示给用户的消息
// 数据库错误一律返回通用文案，不暴露底层细节
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrDatabase) {
		return ErrDatabase.Error()
	}
	return err.Error()
}
