package twse

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"twse_ingest/internal/feature/ingest/domain/entity"
	"twse_ingest/internal/feature/ingest/usecase"
	"twse_ingest/internal/platform/externalapi/twse/dto"
)

// noCacheHeaders はキャッシュされていない最新の休場日一覧を取得するためのヘッダーです。
var noCacheHeaders = map[string]string{
	"Accept":            "application/json",
	"If-Modified-Since": "Mon, 26 Jul 1997 05:00:00 GMT",
	"Cache-Control":     "no-cache",
	"Pragma":            "no-cache",
}

// Client はTWSEの公開APIから休場日と日次レポートを取得します。
type Client struct {
	cfg  Config
	http *resty.Client
}

// ClientがHolidayFeedとDailyReportFeedを実装していることをコンパイル時に検証します。
var (
	_ usecase.HolidayFeed     = (*Client)(nil)
	_ usecase.DailyReportFeed = (*Client)(nil)
)

// NewClient は指定された設定とrestyクライアントで Client を生成します。
func NewClient(cfg Config, http *resty.Client) *Client {
	return &Client{cfg: cfg, http: http}
}

// GetHolidaySchedule は休場日一覧を取得し、民国暦の日付文字列のスライスとして返します。
func (c *Client) GetHolidaySchedule(ctx context.Context) ([]string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeaders(noCacheHeaders).
		Get(c.cfg.HolidayURL)
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("twse holiday http %d", res.StatusCode())
	}

	var body []dto.HolidayEntry
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode holiday schedule: %w", err)
	}

	dates := make([]string, 0, len(body))
	for _, h := range body {
		dates = append(dates, h.Date)
	}
	return dates, nil
}

// GetDailyReport は全銘柄の日次レポートを取得します。
// stat の判定は呼び出し元で行います。
func (c *Client) GetDailyReport(ctx context.Context) (entity.DailyReport, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.cfg.UserAgent).
		Get(c.cfg.DailyReportURL)
	if err != nil {
		return entity.DailyReport{}, err
	}
	if !res.IsSuccess() {
		return entity.DailyReport{}, fmt.Errorf("twse http %d", res.StatusCode())
	}

	var body dto.DailyReportResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return entity.DailyReport{}, fmt.Errorf("decode daily report: %w", err)
	}

	return entity.DailyReport{
		Stat:    body.Stat,
		HasData: body.Data != nil,
		Rows:    body.Data,
	}, nil
}
