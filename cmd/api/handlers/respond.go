package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"product-compare/cmd/api/apperr"
	"product-compare/cmd/api/dto"
	"product-compare/cmd/api/middleware"
	"product-compare/cmd/api/trace"
	"product-compare/internal/logger"
)

const (
	msgInvalidBody  = "Invalid JSON body"
	msgBodyTooLarge = "Request body too large"
)

// respondError 는 에러 Kind 로 상태 코드를 정하고 공개 메시지만 응답한다.
// 원인 에러는 request_id 와 함께 서버 로그에만 남긴다.
func respondError(c *gin.Context, err error, fallback string) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	msg := apperr.PublicMessage(err, fallback)

	fields := trace.LogFields(c.Request.Context(), logger.Fields{
		"path":       c.FullPath(),
		"status":     status,
		"error_kind": string(kind),
		"error":      err.Error(),
	})
	if status >= http.StatusInternalServerError {
		logger.ErrorWithFields("request failed", fields)
	} else {
		logger.DebugWithFields("request rejected", fields)
	}
	c.JSON(status, dto.ErrorResponseDTO{Error: msg})
}

// bindJSON 은 바디를 디코딩한다. 빈 바디는 zero value 로 취급한다.
func bindJSON(c *gin.Context, out any) bool {
	err := c.ShouldBindJSON(out)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponseDTO{Error: msgBodyTooLarge})
		return false
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: msgInvalidBody})
	return false
}

// currentUserID 는 RequireAuth 가 저장한 사용자 ID 를 꺼낸다.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "No token"})
		return primitive.NilObjectID, false
	}
	return uid, true
}
