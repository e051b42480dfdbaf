package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit 는 요청 바디를 limit 바이트로 제한한다. 초과분을 읽으면 *http.MaxBytesError 가 반환된다.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
