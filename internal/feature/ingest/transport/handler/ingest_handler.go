package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"twse_ingest/internal/feature/ingest/domain"
	"twse_ingest/internal/feature/ingest/domain/entity"
	"twse_ingest/internal/feature/ingest/transport/http/dto"
)

// IngestRunner は1回分のインジェストを実行するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type IngestRunner interface {
	Run(ctx context.Context) entity.RunReport
}

// RunReader は記録済みの実行結果を参照します。
type RunReader interface {
	Latest(ctx context.Context) (entity.RunReport, error)
	ByDate(ctx context.Context, date string) (entity.RunReport, error)
}

// IngestHandler はインジェストの実行と実行結果の参照を扱うHTTPハンドラーです。
type IngestHandler struct {
	runner IngestRunner
	runs   RunReader
}

// NewIngestHandler は新しい IngestHandler を作成します。runs が nil の場合、参照APIは404を返します。
func NewIngestHandler(runner IngestRunner, runs RunReader) *IngestHandler {
	return &IngestHandler{runner: runner, runs: runs}
}

// Ingest はインジェストを1回実行し、結果を返します。
// 失敗扱いの終了状態では500、それ以外（取引日でない場合などを含む）は200を返します。
func (h *IngestHandler) Ingest(c *gin.Context) {
	report := h.runner.Run(c.Request.Context())

	status := http.StatusOK
	if report.Status.Failed() {
		status = http.StatusInternalServerError
	}
	c.JSON(status, dto.FromRunReport(report))
}

// Latest は直近の実行結果を返します。
func (h *IngestHandler) Latest(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrRunNotFound.Error()})
		return
	}
	h.respond(c, func(ctx context.Context) (entity.RunReport, error) {
		return h.runs.Latest(ctx)
	})
}

// ByDate は指定した取引日（YYYY-MM-DD）の実行結果を返します。
func (h *IngestHandler) ByDate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	if h.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrRunNotFound.Error()})
		return
	}
	h.respond(c, func(ctx context.Context) (entity.RunReport, error) {
		return h.runs.ByDate(ctx, date)
	})
}

func (h *IngestHandler) respond(c *gin.Context, get func(context.Context) (entity.RunReport, error)) {
	report, err := get(c.Request.Context())
	switch {
	case errors.Is(err, domain.ErrRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, dto.FromRunReport(report))
	}
}
