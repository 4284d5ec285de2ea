// Package twse provides a client for the Taiwan Stock Exchange public data endpoints.
package twse

import "time"

const (
	// DefaultHolidayURL is the open-data holiday schedule endpoint.
	DefaultHolidayURL = "https://openapi.twse.com.tw/v1/holidaySchedule/holidaySchedule"
	// DefaultDailyReportURL is the all-securities end-of-day report endpoint.
	DefaultDailyReportURL = "https://www.twse.com.tw/exchangeReport/STOCK_DAY_ALL"
	// DefaultTimeout bounds every request to the exchange.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent is sent with the daily report request.
	DefaultUserAgent = "Mozilla/5.0"
)

// Config holds configuration for the TWSE client.
type Config struct {
	HolidayURL     string        // Holiday schedule endpoint
	DailyReportURL string        // STOCK_DAY_ALL endpoint
	Timeout        time.Duration // HTTP request timeout
	UserAgent      string        // User-Agent for the daily report request
}

// DefaultConfig returns the production endpoints.
func DefaultConfig() Config {
	return Config{
		HolidayURL:     DefaultHolidayURL,
		DailyReportURL: DefaultDailyReportURL,
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
	}
}
