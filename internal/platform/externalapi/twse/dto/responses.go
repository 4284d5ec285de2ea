// Package dto defines data transfer objects for the TWSE API responses.
package dto

// HolidayEntry is one element of the holiday schedule response.
// Date is in ROC calendar form, e.g. "1140101".
type HolidayEntry struct {
	Date        string `json:"Date"`
	Name        string `json:"Name"`
	Weekday     string `json:"Weekday"`
	Description string `json:"Description"`
}

// DailyReportResponse represents the JSON response from the STOCK_DAY_ALL endpoint.
// Data is nil when the member is absent or null.
type DailyReportResponse struct {
	Stat   string     `json:"stat"`
	Date   string     `json:"date"`
	Title  string     `json:"title"`
	Fields []string   `json:"fields"`
	Data   [][]string `json:"data"`
}
