package services

import (
	"context"
	"errors"
	"net/http"

	"mindful-chat/generator"
)

var (
	// ErrValidation 의 메시지는 클라이언트에게 그대로 노출된다.
	ErrValidation = errors.New("validation failed")

	// ErrPersistence 는 재시도 후에도 세션 스토어 호출이 실패했음을 뜻한다.
	ErrPersistence = errors.New("session store failure")
)

// statusClientClosedRequest 는 응답을 기다리던 클라이언트가 먼저 끊은 경우다.
const statusClientClosedRequest = 499

// ServiceError 는 핸들러가 그대로 HTTP 응답으로 옮기는 서비스 오류다.
type ServiceError struct {
	StatusCode int
	ErrorCode  string
	// Detail 은 검증 오류에서만 채워진다.
	Detail string
	Cause  error
}

func (e *ServiceError) Error() string {
	if e == nil {
		return "internal_error"
	}
	return e.ErrorCode
}

func (e *ServiceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// validationError 는 msg 를 클라이언트에게 보여 줄 검증 오류를 만든다.
func validationError(msg string) *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusUnprocessableEntity,
		ErrorCode:  "validation_error",
		Detail:     msg,
		Cause:      errors.Join(ErrValidation, errors.New(msg)),
	}
}

// toServiceError 는 내부 오류를 호출자가 볼 수 있는 코드로 좁힌다.
func toServiceError(err error) *ServiceError {
	var se *ServiceError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &se):
		return se
	case errors.Is(err, ErrValidation):
		return &ServiceError{StatusCode: http.StatusUnprocessableEntity, ErrorCode: "validation_error", Detail: err.Error(), Cause: err}
	case errors.Is(err, generator.ErrConfiguration):
		return &ServiceError{StatusCode: http.StatusServiceUnavailable, ErrorCode: "service_unavailable", Cause: err}
	case errors.Is(err, context.Canceled):
		return &ServiceError{StatusCode: statusClientClosedRequest, ErrorCode: "request_canceled", Cause: err}
	default:
		return &ServiceError{StatusCode: http.StatusInternalServerError, ErrorCode: "internal_error", Cause: err}
	}
}
