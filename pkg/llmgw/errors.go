package llmgw

import (
	"errors"
	"fmt"
)

// ═══════════════════════════════════════════════════════════════════════════
// 错误类型
// ═══════════════════════════════════════════════════════════════════════════

// ErrorType 错误类型
type ErrorType string

const (
	// ErrTypeConfig 配置错误（持久化文件中的单个条目损坏等，可恢复）
	ErrTypeConfig ErrorType = "config_error"

	// ErrTypePersistence 持久化错误（配置文件读写失败，进程继续以内存状态运行）
	ErrTypePersistence ErrorType = "persistence_error"
)

// ═══════════════════════════════════════════════════════════════════════════
// 基础错误
// ═══════════════════════════════════════════════════════════════════════════

// BaseError 基础错误实现
type BaseError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *BaseError) Unwrap() error {
	return e.Err
}

// ═══════════════════════════════════════════════════════════════════════════
// 配置错误
// ═══════════════════════════════════════════════════════════════════════════

// ConfigError 配置条目损坏错误
//
// 加载时单个 Provider 条目无法解析会产生此错误。它只用于记录日志：
// 损坏的条目被跳过并以默认值补全，整体加载永不因此失败。
type ConfigError struct {
	*BaseError

	// Key 出错的 Provider 键
	Key string
}

// NewConfigError 创建配置错误
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{
		BaseError: &BaseError{
			Type:    ErrTypeConfig,
			Message: fmt.Sprintf("failed to load provider entry '%s'", key),
			Err:     err,
		},
		Key: key,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 持久化错误
// ═══════════════════════════════════════════════════════════════════════════

// PersistenceError 持久化错误
type PersistenceError struct {
	*BaseError

	// Op 出错的操作："read", "write", "rename" 等
	Op string
}

// NewPersistenceError 创建持久化错误
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{
		BaseError: &BaseError{
			Type:    ErrTypePersistence,
			Message: fmt.Sprintf("failed to %s config file", op),
			Err:     err,
		},
		Op: op,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 错误匹配函数（支持 errors.Is/As）
// ═══════════════════════════════════════════════════════════════════════════

// IsConfigError 检查是否为配置错误
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsPersistenceError 检查是否为持久化错误
func IsPersistenceError(err error) bool {
	var e *PersistenceError
	return errors.As(err, &e)
}
