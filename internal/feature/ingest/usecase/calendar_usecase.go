package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"twse_ingest/internal/feature/ingest/domain/entity"
)

// HolidayFeed は取引所の休場日一覧（民国暦の日付文字列）を取得する外部APIのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type HolidayFeed interface {
	GetHolidaySchedule(ctx context.Context) ([]string, error)
}

// HolidaySource は西暦 YYYYMMDD 形式の休場日集合を返します。
type HolidaySource interface {
	FetchHolidays(ctx context.Context) map[string]struct{}
}

// HolidayResolver は休場日一覧を取得し、西暦の YYYYMMDD 集合に変換します。
type HolidayResolver struct {
	feed   HolidayFeed
	logger *slog.Logger
}

var _ HolidaySource = (*HolidayResolver)(nil)

// NewHolidayResolver は新しい HolidayResolver を作成します。
func NewHolidayResolver(feed HolidayFeed, logger *slog.Logger) *HolidayResolver {
	return &HolidayResolver{feed: feed, logger: orDiscard(logger)}
}

// FetchHolidays は休場日の集合を返します。
// 取得・デコード・変換のいずれかに失敗した場合はエラーをログに出力し、空集合を返します（fail-open）。
// 休場日が不明な場合、平日はすべて取引日として扱われます。
func (r *HolidayResolver) FetchHolidays(ctx context.Context) map[string]struct{} {
	raw, err := r.feed.GetHolidaySchedule(ctx)
	if err != nil {
		r.logger.Error("failed to fetch exchange holidays", "error", err)
		return map[string]struct{}{}
	}

	holidays := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		h, err := entity.ParseROCDate(s)
		if err != nil {
			// 1件でも解釈できなければ一覧全体を信用しない
			r.logger.Error("failed to convert exchange holiday", "date", s, "error", err)
			return map[string]struct{}{}
		}
		holidays[h.String()] = struct{}{}
	}
	r.logger.Debug("fetched exchange holidays", "count", len(holidays))
	return holidays
}

// TradingDayClassifier は休場日と週末の規則から取引日かどうかを判定します。
type TradingDayClassifier struct {
	holidays HolidaySource
	loc      *time.Location
}

// NewTradingDayClassifier は新しい TradingDayClassifier を作成します。
// loc が nil の場合は UTC を使用します。
func NewTradingDayClassifier(holidays HolidaySource, loc *time.Location) *TradingDayClassifier {
	if loc == nil {
		loc = time.UTC
	}
	return &TradingDayClassifier{holidays: holidays, loc: loc}
}

// IsTradingDay は YYYYMMDD 形式の日付が取引日であれば true を返します。
// 呼び出しごとに休場日一覧を取得し直します。休場日の取得失敗ではエラーになりません。
func (c *TradingDayClassifier) IsTradingDay(ctx context.Context, dateStr string) (bool, error) {
	d, err := time.ParseInLocation(entity.HolidayLayout, dateStr, c.loc)
	if err != nil {
		return false, fmt.Errorf("parse trading date %q: %w", dateStr, err)
	}

	if _, ok := c.holidays.FetchHolidays(ctx)[dateStr]; ok {
		return false, nil
	}

	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false, nil
	}
	return true, nil
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
