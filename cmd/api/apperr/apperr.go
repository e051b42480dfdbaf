package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 는 에러 분류이며 HTTP 상태 코드 매핑의 기준이 된다.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindNotFound   Kind = "not_found"
	KindAnalysis   Kind = "analysis"
	KindFetch      Kind = "fetch"
	KindServer     Kind = "server"
)

// Error 는 Kind 와 사용자에게 노출 가능한 Message, 내부 원인 Err 를 함께 담는다.
// Message 는 응답 바디에 그대로 쓰일 수 있으므로 upstream 상세를 넣지 않는다.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		if e.Message == "" {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf 는 err 체인에서 가장 바깥의 *Error 의 Kind 를 반환한다. 없으면 KindServer.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}

// PublicMessage 는 클라이언트에 내려줄 메시지를 반환한다.
// Message 가 비어 있으면 fallback 을 사용한다.
func PublicMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
