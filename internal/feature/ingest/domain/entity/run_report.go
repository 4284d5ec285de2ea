package entity

import "time"

// RunStatus はインジェスト実行の終了状態です。
type RunStatus string

const (
	StatusInvalidInput      RunStatus = "invalid_input"
	StatusNotTradingDay     RunStatus = "not_trading_day"
	StatusFeedError         RunStatus = "feed_error"
	StatusNoDataAvailable   RunStatus = "no_data_available"
	StatusNoMatchingRecords RunStatus = "no_matching_records"
	StatusNoNewData         RunStatus = "no_new_data"
	StatusPersistSuccess    RunStatus = "persist_success"
	StatusPersistFailure    RunStatus = "persist_failure"
	StatusStoreError        RunStatus = "store_error"
)

// 各終了状態に対応する呼び出し元向けメッセージです。
const (
	MsgInvalidInput      = "Error: Invalid stock codes"
	MsgNotTradingDay     = "Not a trading day, data fetch skipped"
	MsgNoDataAvailable   = "No data available"
	MsgNoMatchingRecords = "No data to insert"
	MsgNoNewData         = "No new data to insert"
	MsgPersistSuccess    = "Stock data fetched and stored successfully"
	MsgPersistFailure    = "Failed to insert data into warehouse"
	MsgStoreError        = "Warehouse error occurred"
)

// Failed reports whether the status should be treated as a failed run by a scheduler.
func (s RunStatus) Failed() bool {
	switch s {
	case StatusInvalidInput, StatusFeedError, StatusPersistFailure, StatusStoreError:
		return true
	default:
		return false
	}
}

// RunReport は1回の実行結果の詳細です。Message が呼び出し元に返す状態文字列で、
// 件数や行エラーは補足情報として保持します。
type RunReport struct {
	RunID      string     `json:"run_id"`
	TradeDate  string     `json:"trade_date"`
	Status     RunStatus  `json:"status"`
	Message    string     `json:"message"`
	Fetched    int        `json:"fetched"`
	Skipped    int        `json:"skipped"`
	Inserted   int        `json:"inserted"`
	RowErrors  []RowError `json:"row_errors,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}
