package middleware

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"product-compare/cmd/api/auth"
	"product-compare/cmd/api/trace"
	"product-compare/internal/logger"
)

const ContextKeyUserID = "user_id"

// TokenParser 는 토큰을 검증하고 userID 를 돌려준다. *auth.JWTManager 가 구현한다.
type TokenParser interface {
	Parse(tokenString string) (string, error)
}

// RequireAuth 는 요청 헤더의 JWT 를 검증하고 사용자 ObjectID 를 컨텍스트에 저장한다.
// 토큰 원문과 payload 는 로그에 남기지 않는다.
func RequireAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			logAuthFailure(c, err)
			auth.AbortWithUnauthorized(c, err)
			return
		}

		userID, err := tokens.Parse(token)
		if err != nil {
			logAuthFailure(c, err)
			auth.AbortWithUnauthorized(c, auth.ErrInvalidToken)
			return
		}

		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			logAuthFailure(c, err)
			auth.AbortWithUnauthorized(c, auth.ErrInvalidToken)
			return
		}

		c.Set(ContextKeyUserID, oid)
		c.Next()
	}
}

// UserID 는 RequireAuth 가 저장한 사용자 ObjectID 를 반환한다.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return primitive.NilObjectID, false
	}
	oid, ok := v.(primitive.ObjectID)
	return oid, ok
}

func logAuthFailure(c *gin.Context, err error) {
	logger.WarnWithFields("authentication failed", trace.LogFields(c.Request.Context(), logger.Fields{
		"path":       c.Request.URL.Path,
		"error_kind": "auth",
		"error":      err.Error(),
	}))
}
