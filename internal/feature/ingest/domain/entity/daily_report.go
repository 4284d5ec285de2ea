package entity

// StatOK is the status sentinel the exchange returns when the report has data.
const StatOK = "OK"

// DailyReport is the raw all-securities end-of-day report.
// HasData is false when the "data" member was absent or null.
type DailyReport struct {
	Stat    string
	HasData bool
	Rows    [][]string
}

// Available reports whether the report carries usable rows.
func (d DailyReport) Available() bool {
	return d.Stat == StatOK && d.HasData
}
