package router

import (
	"github.com/gin-gonic/gin"

	ingesthandler "twse_ingest/internal/feature/ingest/transport/handler"
	"twse_ingest/internal/platform/http/handler"
)

func NewRouter(ingest *ingesthandler.IngestHandler, checks map[string]handler.Check) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	health := handler.Health(checks)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	// インジェストを1回実行（Cloud Scheduler などから呼び出す）
	r.POST("/ingest", ingest.Ingest)

	// 実行結果の参照
	runs := r.Group("/runs")
	{
		runs.GET("/latest", ingest.Latest)
		runs.GET("/:date", ingest.ByDate)
	}

	return r
}
