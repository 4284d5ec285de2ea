package entity

import (
	"fmt"
	"strconv"
	"strings"

	"twse_ingest/internal/feature/ingest/domain"
)

// fieldKind はフィードの各列の型です。
type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindFloat
)

// stockField はフィードの列定義です。順序は STOCK_DAY_ALL の列順と一致します。
type stockField struct {
	name string
	kind fieldKind
}

var stockFields = []stockField{
	{"stock_code", kindString},
	{"stock_name", kindString},
	{"trade_volume", kindInt},
	{"trade_value", kindInt},
	{"opening_price", kindFloat},
	{"highest_price", kindFloat},
	{"lowest_price", kindFloat},
	{"closing_price", kindFloat},
	{"price_change", kindFloat},
	{"transaction_count", kindInt},
}

// StockFieldCount は1行に必要な列数です。
var StockFieldCount = len(stockFields)

// FieldError は1列の型変換に失敗したことを表します。
type FieldError struct {
	Field string
	Raw   string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("invalid value for %s: %q: %v", e.Field, e.Raw, e.Err)
}

func (e FieldError) Unwrap() error { return e.Err }

// fieldValue is the result of converting one column: exactly one of the
// value pointers is set, or err is non-nil.
type fieldValue struct {
	str string
	i   *int64
	f   *float64
	err error
}

func convertField(kind fieldKind, raw string) fieldValue {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	switch kind {
	case kindInt:
		n, err := strconv.ParseInt(cleaned, 10, 64)
		if err != nil {
			return fieldValue{err: err}
		}
		return fieldValue{i: &n}
	case kindFloat:
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return fieldValue{err: err}
		}
		return fieldValue{f: &f}
	default:
		return fieldValue{str: strings.ReplaceAll(raw, ",", "")}
	}
}

// ParseStockRow は STOCK_DAY_ALL の1行を StockRecord に変換します。
// 列単位の変換失敗はその列を nil にして FieldError として返し、行自体は必ず生成します。
// 行がスキーマより短い場合のみ error を返します。
func ParseStockRow(row []string, date string) (StockRecord, []FieldError, error) {
	if len(row) < len(stockFields) {
		return StockRecord{}, nil, fmt.Errorf("%w: got %d fields, want %d", domain.ErrRowTooShort, len(row), len(stockFields))
	}

	rec := StockRecord{Date: date}
	var fieldErrs []FieldError
	for i, fd := range stockFields {
		v := convertField(fd.kind, row[i])
		if v.err != nil {
			fieldErrs = append(fieldErrs, FieldError{Field: fd.name, Raw: row[i], Err: v.err})
		}
		rec.assign(fd.name, v)
	}
	return rec, fieldErrs, nil
}

func (r *StockRecord) assign(name string, v fieldValue) {
	switch name {
	case "stock_code":
		r.StockCode = v.str
	case "stock_name":
		r.StockName = v.str
	case "trade_volume":
		r.TradeVolume = v.i
	case "trade_value":
		r.TradeValue = v.i
	case "opening_price":
		r.OpeningPrice = v.f
	case "highest_price":
		r.HighestPrice = v.f
	case "lowest_price":
		r.LowestPrice = v.f
	case "closing_price":
		r.ClosingPrice = v.f
	case "price_change":
		r.PriceChange = v.f
	case "transaction_count":
		r.TransactionCount = v.i
	}
}
