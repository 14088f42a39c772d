package common

import "errors"

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeForbidden    ErrorCode = "forbidden"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeConflict     ErrorCode = "conflict"
	ErrorCodeGateway      ErrorCode = "gateway"
	ErrorCodeStorage      ErrorCode = "storage"
	ErrorCodeInternal     ErrorCode = "internal"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
	// PlatformCode 保存平台侧 errcode，仅在 Code 为 gateway 时有值，
	// 用于透传给客户端做问题定位
	PlatformCode int
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewServiceError(code ErrorCode, message string) error {
	return &ServiceError{Code: code, Message: message}
}

func NewValidationError(message string) error {
	return NewServiceError(ErrorCodeValidation, message)
}

func NewUnauthorizedError(message string) error {
	return NewServiceError(ErrorCodeUnauthorized, message)
}

func NewForbiddenError(message string) error {
	return NewServiceError(ErrorCodeForbidden, message)
}

func NewNotFoundError(message string) error {
	return NewServiceError(ErrorCodeNotFound, message)
}

func NewConflictError(message string) error {
	return NewServiceError(ErrorCodeConflict, message)
}

func NewStorageError(message string) error {
	return NewServiceError(ErrorCodeStorage, message)
}

func NewInternalError(message string) error {
	return NewServiceError(ErrorCodeInternal, message)
}

// NewGatewayError 平台侧逻辑错误，携带 errcode 原样透传
func NewGatewayError(platformCode int, message string) error {
	return &ServiceError{Code: ErrorCodeGateway, Message: message, PlatformCode: platformCode}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}
