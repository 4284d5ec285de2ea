// Package entity defines the domain models for the ingest feature.
package entity

// DateLayout is the layout of StockRecord.Date (e.g. "2025-01-02").
const DateLayout = "2006-01-02"

// StockRecord is one security's trading summary for one day.
// (Date, StockCode) is the natural key. Numeric fields are nil when the
// source value could not be converted.
type StockRecord struct {
	Date             string   `json:"date"`
	StockCode        string   `json:"stock_code"`
	StockName        string   `json:"stock_name"`
	TradeVolume      *int64   `json:"trade_volume"`
	TradeValue       *int64   `json:"trade_value"`
	OpeningPrice     *float64 `json:"opening_price"`
	HighestPrice     *float64 `json:"highest_price"`
	LowestPrice      *float64 `json:"lowest_price"`
	ClosingPrice     *float64 `json:"closing_price"`
	PriceChange      *float64 `json:"price_change"`
	TransactionCount *int64   `json:"transaction_count"`
}

// Key returns the natural key of the record as "date/stock_code".
func (r StockRecord) Key() string {
	return r.Date + "/" + r.StockCode
}

// RowError is a per-row failure reported by the warehouse for a bulk insert.
type RowError struct {
	Index     int    `json:"index"`
	StockCode string `json:"stock_code"`
	Message   string `json:"message"`
}
