package dto

import (
	"time"

	"twse_ingest/internal/feature/ingest/domain/entity"
)

// RowErrorItem は挿入に失敗した1行の情報です。
type RowErrorItem struct {
	Index     int    `json:"index"`
	StockCode string `json:"stock_code"`
	Message   string `json:"message"`
}

// RunResponse はインジェスト実行結果のレスポンスです。
type RunResponse struct {
	RunID      string         `json:"run_id"`
	TradeDate  string         `json:"trade_date"`
	Status     string         `json:"status"`
	Message    string         `json:"message"`
	Fetched    int            `json:"fetched"`
	Skipped    int            `json:"skipped"`
	Inserted   int            `json:"inserted"`
	RowErrors  []RowErrorItem `json:"row_errors,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// FromRunReport は RunReport をレスポンスに変換します。
func FromRunReport(r entity.RunReport) RunResponse {
	out := RunResponse{
		RunID:      r.RunID,
		TradeDate:  r.TradeDate,
		Status:     string(r.Status),
		Message:    r.Message,
		Fetched:    r.Fetched,
		Skipped:    r.Skipped,
		Inserted:   r.Inserted,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
	for _, e := range r.RowErrors {
		out.RowErrors = append(out.RowErrors, RowErrorItem{Index: e.Index, StockCode: e.StockCode, Message: e.Message})
	}
	return out
}
