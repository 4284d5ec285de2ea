package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"twse_ingest/internal/feature/ingest/domain/entity"
)

// TradingDayChecker は指定日が取引日かどうかを判定します。
type TradingDayChecker interface {
	IsTradingDay(ctx context.Context, dateStr string) (bool, error)
}

// RecordFetcher は日次レポートを取得して監視銘柄のレコードに変換します。
type RecordFetcher interface {
	FetchAndParse(ctx context.Context, codes []string, today time.Time) (FeedResult, error)
}

// RecordFilter は保存済みのレコードを取り除きます。
type RecordFilter interface {
	FilterNew(ctx context.Context, batch []entity.StockRecord) ([]entity.StockRecord, error)
}

// RecordPersister はレコードを一括で保存します。
type RecordPersister interface {
	Persist(ctx context.Context, batch []entity.StockRecord) (PersistResult, error)
}

// RunRecorder は実行結果を記録します。記録の失敗は実行結果に影響しません。
type RunRecorder interface {
	Record(ctx context.Context, report entity.RunReport) error
}

// IngestOption は IngestUsecase の任意設定です。
type IngestOption func(*IngestUsecase)

// WithClock は現在時刻の取得関数を差し替えます。
func WithClock(now func() time.Time) IngestOption {
	return func(iu *IngestUsecase) { iu.now = now }
}

// WithLocation は取引日を判定するタイムゾーンを設定します。
func WithLocation(loc *time.Location) IngestOption {
	return func(iu *IngestUsecase) {
		if loc != nil {
			iu.loc = loc
		}
	}
}

// WithRecorder は実行結果の記録先を設定します。
func WithRecorder(r RunRecorder) IngestOption {
	return func(iu *IngestUsecase) { iu.recorder = r }
}

// IngestUsecase は当日分の日次データを取得し、未保存のものだけをデータストアに保存するユースケースです。
// 入力検証 → 取引日判定 → 取得 → 重複除去 → 保存 の順に実行し、各段階で終了状態を返します。
type IngestUsecase struct {
	codes     []string
	calendar  TradingDayChecker
	feed      RecordFetcher
	filter    RecordFilter
	persister RecordPersister
	recorder  RunRecorder
	logger    *slog.Logger
	now       func() time.Time
	loc       *time.Location
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(codes []string, calendar TradingDayChecker, feed RecordFetcher, filter RecordFilter,
	persister RecordPersister, logger *slog.Logger, opts ...IngestOption) *IngestUsecase {
	iu := &IngestUsecase{
		codes:     append([]string(nil), codes...),
		calendar:  calendar,
		feed:      feed,
		filter:    filter,
		persister: persister,
		logger:    orDiscard(logger),
		now:       time.Now,
		loc:       time.UTC,
	}
	for _, opt := range opts {
		opt(iu)
	}
	return iu
}

// Run は1回分のインジェストを実行し、結果を返します。
// 想定外のエラーやパニックは store_error として扱い、呼び出し元には伝播させません。
func (iu *IngestUsecase) Run(ctx context.Context) (report entity.RunReport) {
	started := iu.now().In(iu.loc)
	report = entity.RunReport{
		RunID:     uuid.NewString(),
		TradeDate: started.Format(entity.DateLayout),
		StartedAt: started,
	}
	logger := iu.logger.With("run_id", report.RunID)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("unexpected panic during ingestion", "panic", fmt.Sprint(r))
			finish(&report, entity.StatusStoreError, entity.MsgStoreError)
		}
		report.FinishedAt = iu.now().In(iu.loc)
		logger.Info("ingestion finished", "status", report.Status, "message", report.Message,
			"fetched", report.Fetched, "skipped", report.Skipped, "inserted", report.Inserted)
		iu.record(ctx, logger, report)
	}()

	// 入力検証
	if _, err := entity.NewWatchlist(iu.codes); err != nil {
		logger.Error("invalid stock codes provided", "error", err)
		finish(&report, entity.StatusInvalidInput, entity.MsgInvalidInput)
		return report
	}

	// 取引日判定
	dateStr := started.Format(entity.HolidayLayout)
	ok, err := iu.calendar.IsTradingDay(ctx, dateStr)
	if err != nil {
		logger.Error("failed to classify trading day", "date", dateStr, "error", err)
		finish(&report, entity.StatusStoreError, entity.MsgStoreError)
		return report
	}
	if !ok {
		logger.Info("not a trading day, skipping data fetch", "date", dateStr)
		finish(&report, entity.StatusNotTradingDay, entity.MsgNotTradingDay)
		return report
	}

	// 取得
	res, err := iu.feed.FetchAndParse(ctx, iu.codes, started)
	if err != nil {
		if errors.Is(err, ErrInvalidWatchlist) {
			finish(&report, entity.StatusInvalidInput, entity.MsgInvalidInput)
			return report
		}
		finish(&report, entity.StatusFeedError, "Error: "+err.Error())
		return report
	}
	if res.NoData {
		finish(&report, entity.StatusNoDataAvailable, entity.MsgNoDataAvailable)
		return report
	}
	report.Fetched = len(res.Records)
	if report.Fetched == 0 {
		finish(&report, entity.StatusNoMatchingRecords, entity.MsgNoMatchingRecords)
		return report
	}

	// 重複除去
	fresh, err := iu.filter.FilterNew(ctx, res.Records)
	if err != nil {
		logger.Error("warehouse error while checking existing rows", "error", err)
		finish(&report, entity.StatusStoreError, entity.MsgStoreError)
		return report
	}
	report.Skipped = report.Fetched - len(fresh)
	if len(fresh) == 0 {
		logger.Info("no new data to insert")
		finish(&report, entity.StatusNoNewData, entity.MsgNoNewData)
		return report
	}

	// 保存
	pr, err := iu.persister.Persist(ctx, fresh)
	if err != nil {
		logger.Error("warehouse error while inserting rows", "error", err)
		finish(&report, entity.StatusStoreError, entity.MsgStoreError)
		return report
	}
	if !pr.Succeeded {
		report.RowErrors = pr.RowErrors
		finish(&report, entity.StatusPersistFailure, entity.MsgPersistFailure)
		return report
	}
	report.Inserted = len(fresh)
	finish(&report, entity.StatusPersistSuccess, entity.MsgPersistSuccess)
	return report
}

func (iu *IngestUsecase) record(ctx context.Context, logger *slog.Logger, report entity.RunReport) {
	if iu.recorder == nil {
		return
	}
	if err := iu.recorder.Record(ctx, report); err != nil {
		logger.Warn("failed to record run report", "error", err)
	}
}

func finish(r *entity.RunReport, status entity.RunStatus, msg string) {
	r.Status = status
	r.Message = msg
}
