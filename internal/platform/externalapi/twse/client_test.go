package twse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	infrahttp "twse_ingest/internal/platform/http"
)

func newTestClient(srv *httptest.Server) *Client {
	cfg := Config{
		HolidayURL:     srv.URL + "/holidaySchedule",
		DailyReportURL: srv.URL + "/STOCK_DAY_ALL",
		Timeout:        2 * time.Second,
		UserAgent:      DefaultUserAgent,
	}
	return NewClient(cfg, infrahttp.NewRestyClient(cfg.Timeout))
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.HolidayURL != DefaultHolidayURL {
		t.Errorf("expected holiday URL %q, got %q", DefaultHolidayURL, cfg.HolidayURL)
	}
	if cfg.DailyReportURL != DefaultDailyReportURL {
		t.Errorf("expected daily report URL %q, got %q", DefaultDailyReportURL, cfg.DailyReportURL)
	}
}

func TestClient_GetHolidaySchedule_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify cache-defeating headers
		if got := r.Header.Get("Cache-Control"); got != "no-cache" {
			t.Errorf("expected Cache-Control no-cache, got %q", got)
		}
		if got := r.Header.Get("Pragma"); got != "no-cache" {
			t.Errorf("expected Pragma no-cache, got %q", got)
		}
		if got := r.Header.Get("If-Modified-Since"); got != "Mon, 26 Jul 1997 05:00:00 GMT" {
			t.Errorf("unexpected If-Modified-Since %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"Date": "1140101", "Name": "中華民國開國紀念日", "Weekday": "三", "Description": "依規定放假1日。"},
			{"Date": "1140227", "Name": "和平紀念日", "Weekday": "四", "Description": ""}
		]`))
	}))
	defer server.Close()

	dates, err := newTestClient(server).GetHolidaySchedule(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(dates))
	}
	if dates[0] != "1140101" || dates[1] != "1140227" {
		t.Errorf("unexpected dates: %v", dates)
	}
}

func TestClient_GetHolidaySchedule_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		body       string
		errContain string
	}{
		{"server error", http.StatusInternalServerError, ``, "twse holiday http 500"},
		{"not found", http.StatusNotFound, ``, "twse holiday http 404"},
		{"invalid json", http.StatusOK, `{invalid json`, "decode holiday schedule"},
		{"object instead of array", http.StatusOK, `{"Date": "1140101"}`, "decode holiday schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server).GetHolidaySchedule(context.Background())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContain) {
				t.Errorf("expected error containing %q, got %v", tt.errContain, err)
			}
		})
	}
}

func TestClient_GetDailyReport_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "Mozilla/5.0" {
			t.Errorf("expected User-Agent Mozilla/5.0, got %q", got)
		}
		if r.URL.Path != "/STOCK_DAY_ALL" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"stat": "OK",
			"date": "20250102",
			"title": "114年01月02日 每日收盤行情",
			"fields": ["證券代號","證券名稱","成交股數","成交金額","開盤價","最高價","最低價","收盤價","漲跌價差","成交筆數"],
			"data": [
				["2330","台積電","1,000,000","605,000,000","600.00","610.00","595.00","605.00","5.00","1,200"],
				["0050","元大台灣50","5,000","1,000,000","195.00","196.00","194.00","195.50","-0.50","300"]
			]
		}`))
	}))
	defer server.Close()

	report, err := newTestClient(server).GetDailyReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Stat != "OK" {
		t.Errorf("expected stat OK, got %q", report.Stat)
	}
	if !report.HasData {
		t.Error("expected HasData to be true")
	}
	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}
	if report.Rows[0][2] != "1,000,000" {
		t.Errorf("expected raw value to be passed through, got %q", report.Rows[0][2])
	}
}

func TestClient_GetDailyReport_NoData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantStat    string
		wantHasData bool
	}{
		{"data absent", `{"stat": "很抱歉，沒有符合條件的資料!"}`, "很抱歉，沒有符合條件的資料!", false},
		{"data null", `{"stat": "OK", "data": null}`, "OK", false},
		{"data empty", `{"stat": "OK", "data": []}`, "OK", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			report, err := newTestClient(server).GetDailyReport(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.Stat != tt.wantStat {
				t.Errorf("expected stat %q, got %q", tt.wantStat, report.Stat)
			}
			if report.HasData != tt.wantHasData {
				t.Errorf("expected HasData %v, got %v", tt.wantHasData, report.HasData)
			}
		})
	}
}

func TestClient_GetDailyReport_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"bad request", http.StatusBadRequest},
		{"forbidden", http.StatusForbidden},
		{"internal server error", http.StatusInternalServerError},
		{"service unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			_, err := newTestClient(server).GetDailyReport(context.Background())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "twse http") {
				t.Errorf("expected HTTP error message, got %v", err)
			}
		})
	}
}

func TestClient_GetDailyReport_InvalidJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetDailyReport(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "decode daily report") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestClient_GetDailyReport_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server).GetDailyReport(ctx)
	if err == nil {
		t.Fatal("expected error due to context cancellation, got nil")
	}
}
