// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check は依存先の疎通確認です。nil を返せば正常です。
type Check func(ctx context.Context) error

// Health は /healthz エンドポイントを処理するハンドラーを返します。
// checks に登録した依存先のいずれかが失敗すると503を返します。
func Health(checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				deps[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}

		body := gin.H{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(deps) > 0 {
			body["dependencies"] = deps
		}
		c.JSON(status, body)
	}
}
