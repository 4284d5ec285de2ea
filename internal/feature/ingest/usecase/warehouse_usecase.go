package usecase

import (
	"context"
	"log/slog"

	"twse_ingest/internal/feature/ingest/domain/entity"
)

// Warehouse は分析用データストアへの読み書きを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Warehouse interface {
	// CountExisting は (date, stockCode) に一致する保存済み行の件数を返します。
	CountExisting(ctx context.Context, date, stockCode string) (int64, error)
	// InsertRows はレコードを一括挿入し、行ごとのエラー一覧を返します。
	// error は呼び出し自体が失敗した場合にのみ返されます。
	InsertRows(ctx context.Context, records []entity.StockRecord) ([]entity.RowError, error)
}

// DeduplicationFilter は保存済みのレコードをバッチから取り除きます。
type DeduplicationFilter struct {
	warehouse Warehouse
	logger    *slog.Logger
}

// NewDeduplicationFilter は新しい DeduplicationFilter を作成します。
func NewDeduplicationFilter(warehouse Warehouse, logger *slog.Logger) *DeduplicationFilter {
	return &DeduplicationFilter{warehouse: warehouse, logger: orDiscard(logger)}
}

// FilterNew はレコードごとに1回ずつ存在確認を行い、未保存のレコードだけを元の順序で返します。
// 問い合わせのエラーはそのまま呼び出し元に返します。
func (f *DeduplicationFilter) FilterNew(ctx context.Context, batch []entity.StockRecord) ([]entity.StockRecord, error) {
	out := make([]entity.StockRecord, 0, len(batch))
	for _, rec := range batch {
		n, err := f.warehouse.CountExisting(ctx, rec.Date, rec.StockCode)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			f.logger.Info("record already exists, skipping", "stock_code", rec.StockCode, "date", rec.Date)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// PersistResult は一括挿入の結果です。Succeeded は行エラーが1件も無い場合にのみ true です。
// RowErrors は詳細情報であり、部分成功を意味しません。
type PersistResult struct {
	Succeeded bool
	RowErrors []entity.RowError
}

// Persister は重複除去済みのバッチをデータストアに書き込みます。
type Persister struct {
	warehouse Warehouse
	logger    *slog.Logger
}

// NewPersister は新しい Persister を作成します。
func NewPersister(warehouse Warehouse, logger *slog.Logger) *Persister {
	return &Persister{warehouse: warehouse, logger: orDiscard(logger)}
}

// Persist はバッチを一括挿入します。空のバッチで呼び出さないでください（呼び出し元で短絡します）。
func (p *Persister) Persist(ctx context.Context, batch []entity.StockRecord) (PersistResult, error) {
	rowErrs, err := p.warehouse.InsertRows(ctx, batch)
	if err != nil {
		return PersistResult{}, err
	}
	if len(rowErrs) == 0 {
		p.logger.Info("data inserted successfully", "rows", len(batch))
		return PersistResult{Succeeded: true}, nil
	}
	p.logger.Error("failed to insert data", "rows", len(batch), "row_errors", len(rowErrs))
	return PersistResult{Succeeded: false, RowErrors: rowErrs}, nil
}
