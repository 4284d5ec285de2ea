package entity

import (
	"fmt"
	"strconv"
	"time"

	"twse_ingest/internal/feature/ingest/domain"
)

// ROCYearOffset は民国暦と西暦の年差です（民国114年 = 2025年）。
const ROCYearOffset = 1911

// HolidayLayout は休場日を比較するときの日付書式です。
const HolidayLayout = "20060102"

// HolidayDate は取引所の休場日を表す値オブジェクトです。
type HolidayDate struct {
	Year  int
	Month time.Month
	Day   int
}

// String は休場日を YYYYMMDD 形式で返します。
func (h HolidayDate) String() string {
	return fmt.Sprintf("%04d%02d%02d", h.Year, int(h.Month), h.Day)
}

// ParseROCDate は民国暦の YYYMMDD 文字列を西暦の HolidayDate に変換します。
// 月日はそのまま保持し、年にのみ ROCYearOffset を加算します。
func ParseROCDate(s string) (HolidayDate, error) {
	if len(s) < 5 {
		return HolidayDate{}, fmt.Errorf("%w: %q", domain.ErrMalformedROCDate, s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return HolidayDate{}, fmt.Errorf("%w: %q", domain.ErrMalformedROCDate, s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return HolidayDate{}, fmt.Errorf("%w: %q: %v", domain.ErrMalformedROCDate, s, err)
	}

	month := (n / 100) % 100
	day := n % 100
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return HolidayDate{}, fmt.Errorf("%w: %q", domain.ErrMalformedROCDate, s)
	}

	return HolidayDate{
		Year:  n/10000 + ROCYearOffset,
		Month: time.Month(month),
		Day:   day,
	}, nil
}
