package presenter

import "stock_dashboard/internal/feature/quotes/domain/entity"

// RecentRowCount is the number of rows in the "Recent Data" table.
const RecentRowCount = 10

// Row is one formatted line of the recent data table.
type Row struct {
	Time   string `json:"time"`
	Open   string `json:"open"`
	High   string `json:"high"`
	Low    string `json:"low"`
	Close  string `json:"close"`
	Volume string `json:"volume"`
	SMA20  string `json:"sma20"`
	EMA50  string `json:"ema50"`
}

// RecentRows returns the last n points of s, newest first.
func RecentRows(s entity.Series, n int) []Row {
	tail := s.Tail(n)
	rows := make([]Row, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		p := tail[i]
		rows = append(rows, Row{
			Time:   p.Time.Format(timeLayout),
			Open:   FormatPrice(p.Open),
			High:   FormatPrice(p.High),
			Low:    FormatPrice(p.Low),
			Close:  FormatPrice(p.Close),
			Volume: FormatVolume(p.Volume),
			SMA20:  FormatNullPrice(p.SMA20),
			EMA50:  FormatNullPrice(p.EMA50),
		})
	}
	return rows
}
