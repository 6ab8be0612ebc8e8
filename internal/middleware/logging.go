// Package middleware は Gin フレームワークのミドルウェアを置く。
package middleware

import (
	"time"

	"kintore-coach-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// RequestLogger はリクエストの概要を記録する Gin ミドルウェア。
// 本文には利用者のトレーニング内容や AI とのやり取りが含まれるため記録しない。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path

		log.Infow("HTTP Request Log",
			"statusCode", statusCode,
			"latency", latency.String(),
			"clientIP", clientIP,
			"method", method,
			"path", path,
		)
	}
}
