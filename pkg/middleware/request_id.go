package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID はリクエストIDを伝播するHTTPヘッダーキー。
const HeaderRequestID = "X-Request-ID"

const contextKeyRequestID = "request_id"

// RequestID はリクエストごとにIDを付与するGinミドルウェアを返す。
// クライアントがX-Request-IDを送ってきた場合はその値を引き継ぐ。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID はGinコンテキストからリクエストIDを取得する。
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(contextKeyRequestID); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
