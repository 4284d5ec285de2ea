// Package domain defines domain-level errors for the ingest feature.
package domain

import "errors"

var (
	// ErrMalformedROCDate は民国暦の日付文字列 (YYYMMDD) を解釈できない場合に返されます。
	ErrMalformedROCDate = errors.New("malformed ROC date")

	// ErrInvalidStockCode は監視銘柄コードが空、または英数字以外を含む場合に返されます。
	ErrInvalidStockCode = errors.New("invalid stock code")

	// ErrRowTooShort はフィードの行がスキーマのフィールド数に満たない場合に返されます。
	ErrRowTooShort = errors.New("row shorter than schema")

	// ErrRunNotFound は実行結果がまだ記録されていない場合に返されます。
	ErrRunNotFound = errors.New("run report not found")
)
