package workflow

import (
	"errors"
	"fmt"
)

// AuthorizationError 操作者无权执行请求的变更
// 可恢复: 返回给调用方,不产生任何状态变化
type AuthorizationError struct {
	Op     string
	Reason string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization denied for %s: %s", e.Op, e.Reason)
}

// ValidationError 输入校验失败,在任何变更发生前拒绝
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// InvariantViolationError 尝试绕过唯一变更路径写入派生字段
// 属于编程错误,不向调用方提供恢复路径
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}

// NotFoundError 目标资源不存在
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewAuthorizationError 创建授权错误
func NewAuthorizationError(op, reason string) error {
	return &AuthorizationError{Op: op, Reason: reason}
}

// NewValidationError 创建校验错误
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NewInvariantViolation 创建不变量违反错误
func NewInvariantViolation(reason string) error {
	return &InvariantViolationError{Reason: reason}
}

// NewNotFoundError 创建资源不存在错误
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsAuthorization 判断是否为授权错误
func IsAuthorization(err error) bool {
	var e *AuthorizationError
	return errors.As(err, &e)
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsInvariantViolation 判断是否为不变量违反错误
func IsInvariantViolation(err error) bool {
	var e *InvariantViolationError
	return errors.As(err, &e)
}

// IsNotFound 判断是否为资源不存在错误
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}
