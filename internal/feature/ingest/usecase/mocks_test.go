package usecase

import (
	"context"
	"time"

	"twse_ingest/internal/feature/ingest/domain/entity"
)

// mockHolidayFeed はHolidayFeedインターフェースのモック実装です。
type mockHolidayFeed struct {
	GetHolidayScheduleFunc func(ctx context.Context) ([]string, error)
	calls                  int
}

func (m *mockHolidayFeed) GetHolidaySchedule(ctx context.Context) ([]string, error) {
	m.calls++
	if m.GetHolidayScheduleFunc != nil {
		return m.GetHolidayScheduleFunc(ctx)
	}
	return nil, nil
}

// stubHolidays は固定の休場日集合を返すHolidaySourceです。
type stubHolidays map[string]struct{}

func (s stubHolidays) FetchHolidays(context.Context) map[string]struct{} { return s }

// mockDailyReportFeed はDailyReportFeedインターフェースのモック実装です。
type mockDailyReportFeed struct {
	GetDailyReportFunc func(ctx context.Context) (entity.DailyReport, error)
	calls              int
}

func (m *mockDailyReportFeed) GetDailyReport(ctx context.Context) (entity.DailyReport, error) {
	m.calls++
	if m.GetDailyReportFunc != nil {
		return m.GetDailyReportFunc(ctx)
	}
	return entity.DailyReport{}, nil
}

// mockWarehouse はWarehouseインターフェースのモック実装です。
type mockWarehouse struct {
	CountExistingFunc func(ctx context.Context, date, stockCode string) (int64, error)
	InsertRowsFunc    func(ctx context.Context, records []entity.StockRecord) ([]entity.RowError, error)
	countCalls        []string
	inserted          [][]entity.StockRecord
}

func (m *mockWarehouse) CountExisting(ctx context.Context, date, stockCode string) (int64, error) {
	m.countCalls = append(m.countCalls, date+"/"+stockCode)
	if m.CountExistingFunc != nil {
		return m.CountExistingFunc(ctx, date, stockCode)
	}
	return 0, nil
}

func (m *mockWarehouse) InsertRows(ctx context.Context, records []entity.StockRecord) ([]entity.RowError, error) {
	m.inserted = append(m.inserted, records)
	if m.InsertRowsFunc != nil {
		return m.InsertRowsFunc(ctx, records)
	}
	return nil, nil
}

// mockTradingDayChecker はTradingDayCheckerインターフェースのモック実装です。
type mockTradingDayChecker struct {
	IsTradingDayFunc func(ctx context.Context, dateStr string) (bool, error)
	dates            []string
}

func (m *mockTradingDayChecker) IsTradingDay(ctx context.Context, dateStr string) (bool, error) {
	m.dates = append(m.dates, dateStr)
	if m.IsTradingDayFunc != nil {
		return m.IsTradingDayFunc(ctx, dateStr)
	}
	return true, nil
}

// mockRecordFetcher はRecordFetcherインターフェースのモック実装です。
type mockRecordFetcher struct {
	FetchAndParseFunc func(ctx context.Context, codes []string, today time.Time) (FeedResult, error)
	calls             int
}

func (m *mockRecordFetcher) FetchAndParse(ctx context.Context, codes []string, today time.Time) (FeedResult, error) {
	m.calls++
	if m.FetchAndParseFunc != nil {
		return m.FetchAndParseFunc(ctx, codes, today)
	}
	return FeedResult{}, nil
}

// mockRecordFilter はRecordFilterインターフェースのモック実装です。
type mockRecordFilter struct {
	FilterNewFunc func(ctx context.Context, batch []entity.StockRecord) ([]entity.StockRecord, error)
	calls         int
}

func (m *mockRecordFilter) FilterNew(ctx context.Context, batch []entity.StockRecord) ([]entity.StockRecord, error) {
	m.calls++
	if m.FilterNewFunc != nil {
		return m.FilterNewFunc(ctx, batch)
	}
	return batch, nil
}

// mockRecordPersister はRecordPersisterインターフェースのモック実装です。
type mockRecordPersister struct {
	PersistFunc func(ctx context.Context, batch []entity.StockRecord) (PersistResult, error)
	calls       int
}

func (m *mockRecordPersister) Persist(ctx context.Context, batch []entity.StockRecord) (PersistResult, error) {
	m.calls++
	if m.PersistFunc != nil {
		return m.PersistFunc(ctx, batch)
	}
	return PersistResult{Succeeded: true}, nil
}

// mockRunRecorder はRunRecorderインターフェースのモック実装です。
type mockRunRecorder struct {
	RecordFunc func(ctx context.Context, report entity.RunReport) error
	reports    []entity.RunReport
}

func (m *mockRunRecorder) Record(ctx context.Context, report entity.RunReport) error {
	m.reports = append(m.reports, report)
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, report)
	}
	return nil
}

func record(date, code string) entity.StockRecord {
	return entity.StockRecord{Date: date, StockCode: code, StockName: code}
}
