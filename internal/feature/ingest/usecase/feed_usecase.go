package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"twse_ingest/internal/feature/ingest/domain/entity"
)

// DailyReportFeed は全銘柄の日次レポートを取得する外部APIのインターフェースです。
type DailyReportFeed interface {
	GetDailyReport(ctx context.Context) (entity.DailyReport, error)
}

// FeedResult は FetchAndParse の結果です。
// NoData が true の場合、取引所がデータを返さなかったことを示し Records は空です。
type FeedResult struct {
	Records []entity.StockRecord
	NoData  bool
	Stat    string
}

// FeedParser は日次レポートを取得し、監視銘柄の行だけを StockRecord に変換します。
type FeedParser struct {
	feed   DailyReportFeed
	logger *slog.Logger
}

// NewFeedParser は新しい FeedParser を作成します。
func NewFeedParser(feed DailyReportFeed, logger *slog.Logger) *FeedParser {
	return &FeedParser{feed: feed, logger: orDiscard(logger)}
}

// FetchAndParse は監視銘柄コードを検証したうえで日次レポートを取得し、レコードに変換します。
//
// 振る舞い:
//   - コードが1つでも不正なら ErrInvalidWatchlist を返し、リクエストは送信しません
//   - stat が OK でない、または data が無い場合は NoData を立てた結果を返します
//   - 列単位の変換失敗はその列だけ nil にして警告を出力し、行は結果に含めます
//   - 列数が足りない行はログに出力してスキップします
//   - 通信エラーは ErrFeedUnavailable でラップして返し、部分的な結果は返しません
func (p *FeedParser) FetchAndParse(ctx context.Context, codes []string, today time.Time) (FeedResult, error) {
	watchlist, err := entity.NewWatchlist(codes)
	if err != nil {
		p.logger.Error("invalid stock codes provided", "error", err)
		return FeedResult{}, fmt.Errorf("%w: %v", ErrInvalidWatchlist, err)
	}

	p.logger.Info("fetching daily report", "date", today.Format(entity.HolidayLayout))
	report, err := p.feed.GetDailyReport(ctx)
	if err != nil {
		p.logger.Error("failed to fetch daily report", "error", err)
		return FeedResult{}, fmt.Errorf("%w: %w", ErrFeedUnavailable, err)
	}

	if !report.Available() {
		p.logger.Warn("no data available", "stat", report.Stat)
		return FeedResult{NoData: true, Stat: report.Stat}, nil
	}

	date := today.Format(entity.DateLayout)
	records := make([]entity.StockRecord, 0, watchlist.Len())
	for _, row := range report.Rows {
		if len(row) == 0 || !watchlist.Contains(row[0]) {
			continue
		}
		code := row[0]

		rec, fieldErrs, err := entity.ParseStockRow(row, date)
		if err != nil {
			p.logger.Error("failed to parse row", "stock_code", code, "error", err)
			continue
		}
		for _, fe := range fieldErrs {
			p.logger.Warn("invalid field value", "stock_code", code, "field", fe.Field, "raw", fe.Raw)
		}

		records = append(records, rec)
		p.logger.Info("parsed stock record", "stock_code", code, "closing_price", floatOrNil(rec.ClosingPrice))
	}

	return FeedResult{Records: records, Stat: report.Stat}, nil
}

func floatOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
