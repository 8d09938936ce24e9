package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/w-isiah/shpsk/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// 超限请求在 Content-Length 阶段直接拒绝，分块上传由 MaxBytesReader 截断后在绑定时报错
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
