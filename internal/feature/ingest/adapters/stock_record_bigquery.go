package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gbq "cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	"twse_ingest/internal/feature/ingest/domain/entity"
	"twse_ingest/internal/feature/ingest/usecase"
	"twse_ingest/internal/platform/bigquery"
)

// StockRecordSchema は日次株価テーブルのBigQueryスキーマです。
var StockRecordSchema = gbq.Schema{
	{Name: "date", Type: gbq.DateFieldType, Required: true},
	{Name: "stock_code", Type: gbq.StringFieldType, Required: true},
	{Name: "stock_name", Type: gbq.StringFieldType},
	{Name: "trade_volume", Type: gbq.IntegerFieldType},
	{Name: "trade_value", Type: gbq.IntegerFieldType},
	{Name: "opening_price", Type: gbq.FloatFieldType},
	{Name: "highest_price", Type: gbq.FloatFieldType},
	{Name: "lowest_price", Type: gbq.FloatFieldType},
	{Name: "closing_price", Type: gbq.FloatFieldType},
	{Name: "price_change", Type: gbq.FloatFieldType},
	{Name: "transaction_count", Type: gbq.IntegerFieldType},
}

// StockRecordBigQuery はBigQueryをバックエンドにした Warehouse 実装です。
type StockRecordBigQuery struct {
	client      *gbq.Client
	ref         bigquery.TableRef
	stringDates bool
}

var _ usecase.Warehouse = (*StockRecordBigQuery)(nil)

// BigQueryOption は StockRecordBigQuery の任意設定です。
type BigQueryOption func(*StockRecordBigQuery)

// WithStringDates は date 列を DATE ではなく YYYY-MM-DD の STRING として読み書きします。
// date を STRING で作成した既存テーブルに接続する場合に使います。
func WithStringDates() BigQueryOption {
	return func(b *StockRecordBigQuery) {
		b.stringDates = true
	}
}

// NewStockRecordBigQuery は指定テーブルに読み書きする StockRecordBigQuery を生成します。
func NewStockRecordBigQuery(client *gbq.Client, ref bigquery.TableRef, opts ...BigQueryOption) *StockRecordBigQuery {
	b := &StockRecordBigQuery{client: client, ref: ref}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// EnsureTable はテーブルが存在しなければ作成します。
// 404以外のエラー（権限不足など）はテーブルを作成せずに返します。
func (b *StockRecordBigQuery) EnsureTable(ctx context.Context) error {
	t := b.table()
	_, err := t.Metadata(ctx)
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusNotFound {
		return fmt.Errorf("get table %s: %w", b.ref, err)
	}
	if err := t.Create(ctx, &gbq.TableMetadata{Schema: b.schema()}); err != nil {
		return fmt.Errorf("create table %s: %w", b.ref, err)
	}
	return nil
}

// CountExisting は (date, stock_code) に一致する行数を返します。
func (b *StockRecordBigQuery) CountExisting(ctx context.Context, date, stockCode string) (int64, error) {
	d, err := dateValue(date, b.stringDates)
	if err != nil {
		return 0, err
	}

	q := b.client.Query(countQuery(b.ref))
	q.Parameters = []gbq.QueryParameter{
		{Name: "date", Value: d},
		{Name: "stock_code", Value: stockCode},
	}
	it, err := q.Read(ctx)
	if err != nil {
		return 0, err
	}

	var row struct {
		Count int64 `bigquery:"count"`
	}
	if err := it.Next(&row); err != nil {
		if errors.Is(err, iterator.Done) {
			return 0, nil
		}
		return 0, err
	}
	return row.Count, nil
}

// InsertRows はストリーミング挿入で全件を1回で書き込みます。
// BigQueryが返す行単位のエラーは RowError に変換して返します。
func (b *StockRecordBigQuery) InsertRows(ctx context.Context, records []entity.StockRecord) ([]entity.RowError, error) {
	if len(records) == 0 {
		return nil, nil
	}
	savers := make([]*recordSaver, 0, len(records))
	for _, r := range records {
		savers = append(savers, &recordSaver{rec: r, stringDates: b.stringDates})
	}

	err := b.table().Inserter().Put(ctx, savers)
	return rowErrorsFrom(err, records)
}

func (b *StockRecordBigQuery) table() *gbq.Table {
	return b.client.DatasetInProject(b.ref.ProjectID, b.ref.DatasetID).Table(b.ref.TableID)
}

// schema は date 列の型を設定に合わせた StockRecordSchema を返します。
func (b *StockRecordBigQuery) schema() gbq.Schema {
	if !b.stringDates {
		return StockRecordSchema
	}
	out := make(gbq.Schema, len(StockRecordSchema))
	for i, f := range StockRecordSchema {
		c := *f
		if c.Name == "date" {
			c.Type = gbq.StringFieldType
		}
		out[i] = &c
	}
	return out
}

// dateValue は YYYY-MM-DD を検証し、列の型に合わせた値を返します。
func dateValue(date string, asString bool) (gbq.Value, error) {
	d, err := civil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parse record date %q: %w", date, err)
	}
	if asString {
		return d.String(), nil
	}
	return d, nil
}

func countQuery(ref bigquery.TableRef) string {
	return fmt.Sprintf("SELECT COUNT(*) AS count FROM `%s` WHERE date = @date AND stock_code = @stock_code", ref)
}

// rowErrorsFrom は Put のエラーを行エラー一覧と呼び出しエラーに振り分けます。
func rowErrorsFrom(err error, records []entity.StockRecord) ([]entity.RowError, error) {
	if err == nil {
		return nil, nil
	}
	var multi gbq.PutMultiError
	if !errors.As(err, &multi) {
		return nil, err
	}

	out := make([]entity.RowError, 0, len(multi))
	for _, rie := range multi {
		re := entity.RowError{Index: rie.RowIndex, Message: rie.Errors.Error()}
		if rie.RowIndex >= 0 && rie.RowIndex < len(records) {
			re.StockCode = records[rie.RowIndex].StockCode
		}
		out = append(out, re)
	}
	return out, nil
}

// recordSaver は StockRecord を1行分の bigquery.ValueSaver に変換します。
type recordSaver struct {
	rec         entity.StockRecord
	stringDates bool
}

// Save implements bigquery.ValueSaver. The natural key is used as the insert ID.
func (s *recordSaver) Save() (map[string]gbq.Value, string, error) {
	d, err := dateValue(s.rec.Date, s.stringDates)
	if err != nil {
		return nil, "", err
	}
	row := map[string]gbq.Value{
		"date":              d,
		"stock_code":        s.rec.StockCode,
		"stock_name":        s.rec.StockName,
		"trade_volume":      nullable(s.rec.TradeVolume),
		"trade_value":       nullable(s.rec.TradeValue),
		"opening_price":     nullable(s.rec.OpeningPrice),
		"highest_price":     nullable(s.rec.HighestPrice),
		"lowest_price":      nullable(s.rec.LowestPrice),
		"closing_price":     nullable(s.rec.ClosingPrice),
		"price_change":      nullable(s.rec.PriceChange),
		"transaction_count": nullable(s.rec.TransactionCount),
	}
	return row, s.rec.Date + ":" + s.rec.StockCode, nil
}

func nullable[T int64 | float64](p *T) gbq.Value {
	if p == nil {
		return nil
	}
	return *p
}
