package adapters

import (
	"context"
	"fmt"

	"twse_ingest/internal/feature/ingest/domain/entity"
	"twse_ingest/internal/feature/ingest/usecase"

	"gorm.io/gorm"
)

type stockRecordMySQL struct {
	db *gorm.DB
}

var _ usecase.Warehouse = (*stockRecordMySQL)(nil)

// NewStockRecordRepository は gorm をバックエンドにした Warehouse を返します。
func NewStockRecordRepository(db *gorm.DB) *stockRecordMySQL {
	return &stockRecordMySQL{db: db}
}

// StockRecordModel は日次株価テーブルの行です。
// (date, stock_code) の一意性はストア側の制約ではなく、挿入前の存在確認で担保します。
type StockRecordModel struct {
	ID               uint   `gorm:"primaryKey"`
	Date             string `gorm:"size:10;not null;index:stock_daily_date_code,priority:1"`
	StockCode        string `gorm:"size:16;not null;index:stock_daily_date_code,priority:2"`
	StockName        string `gorm:"size:64;not null;default:''"`
	TradeVolume      *int64
	TradeValue       *int64
	OpeningPrice     *float64
	HighestPrice     *float64
	LowestPrice      *float64
	ClosingPrice     *float64
	PriceChange      *float64
	TransactionCount *int64
}

func (StockRecordModel) TableName() string {
	return "stock_daily"
}

func toModel(e entity.StockRecord) StockRecordModel {
	return StockRecordModel{
		Date:             e.Date,
		StockCode:        e.StockCode,
		StockName:        e.StockName,
		TradeVolume:      e.TradeVolume,
		TradeValue:       e.TradeValue,
		OpeningPrice:     e.OpeningPrice,
		HighestPrice:     e.HighestPrice,
		LowestPrice:      e.LowestPrice,
		ClosingPrice:     e.ClosingPrice,
		PriceChange:      e.PriceChange,
		TransactionCount: e.TransactionCount,
	}
}

func (r *stockRecordMySQL) CountExisting(ctx context.Context, date, stockCode string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&StockRecordModel{}).
		Where("date = ? AND stock_code = ?", date, stockCode).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

// InsertRows は1回の INSERT で全件を書き込みます。
// 文の失敗は行エラーではなく呼び出しエラーとして返します。
func (r *stockRecordMySQL) InsertRows(ctx context.Context, records []entity.StockRecord) ([]entity.RowError, error) {
	if len(records) == 0 {
		return nil, nil
	}
	ms := make([]StockRecordModel, 0, len(records))
	for _, e := range records {
		ms = append(ms, toModel(e))
	}

	if err := r.db.WithContext(ctx).Create(&ms).Error; err != nil {
		return nil, fmt.Errorf("insert %d rows: %w", len(ms), err)
	}
	return nil, nil
}
