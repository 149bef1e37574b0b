package presenter

import (
	"errors"
	"fmt"
	"log/slog"

	"stock_dashboard/internal/feature/quotes/domain"
	"stock_dashboard/internal/feature/quotes/domain/entity"
)

// Notice levels.
const (
	LevelError   = "error"
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// User-facing messages.
const (
	MsgFetchFailed = "Failed to fetch data. Please check the ticker symbol and ensure your API key is correct and not rate-limited."
	MsgNoData      = "No data processed. This might be due to an API issue or an invalid ticker."
	MsgNoNote      = "No note in response."
)

// Notice is one message panel on the dashboard.
type Notice struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// View is the complete page model of one render.
type View struct {
	Title     string            `json:"title"`
	Caption   string            `json:"caption"`
	Symbol    string            `json:"symbol"`
	Interval  entity.Interval   `json:"interval"`
	Intervals []entity.Interval `json:"-"`
	Notices   []Notice          `json:"notices"`
	HasChart  bool              `json:"has_chart"`
	Figure    *Figure           `json:"figure,omitempty"`
	Metrics   []MetricDisplay   `json:"metrics"`
	Rows      []Row             `json:"rows"`
}

// BuildView assembles the dashboard for one (symbol, interval) render.
//
// err is the result of loading the series. Every failure becomes a notice.
// The chart, metrics and table are filled only for a non-empty series.
func BuildView(symbol string, interval entity.Interval, s entity.Series, err error) View {
	v := View{
		Title:     fmt.Sprintf("%s Real-Time Dashboard", symbol),
		Caption:   fmt.Sprintf("Displaying data for the last 100 intervals at `%s` resolution.", interval),
		Symbol:    symbol,
		Interval:  interval,
		Intervals: entity.Intervals(),
		Metrics:   []MetricDisplay{},
		Rows:      []Row{},
	}

	if err != nil {
		v.Notices = errorNotices(symbol, err)
		return v
	}
	if s.Empty() {
		v.Notices = append(v.Notices, Notice{Level: LevelWarning, Text: MsgNoData})
		return v
	}

	// Title and axis use the series' own symbol and interval.
	if s.Symbol == "" {
		s.Symbol = symbol
	}
	if s.Interval == "" {
		s.Interval = interval
	}
	fig := BuildChart(s)
	v.Figure = &fig
	v.HasChart = true

	m, merr := ExtractMetrics(s)
	if merr != nil {
		slog.Warn("could not extract metrics", "symbol", symbol, "error", merr)
		v.Notices = append(v.Notices, Notice{Level: LevelWarning, Text: fmt.Sprintf("Could not display metrics. Error: %v", merr)})
	} else {
		v.Metrics = m.Display()
	}

	v.Rows = RecentRows(s, RecentRowCount)
	return v
}

// errorNotices converts a load error into notices. Provider text is passed through verbatim.
func errorNotices(symbol string, err error) []Notice {
	var (
		pe *domain.ProviderError
		ns []Notice
	)
	switch {
	case errors.Is(err, domain.ErrInvalidSymbol), errors.Is(err, domain.ErrInvalidInterval):
		return []Notice{{Level: LevelWarning, Text: fmt.Sprintf("Invalid input: %v", err)}}

	case errors.As(err, &pe) && errors.Is(err, domain.ErrSchema):
		ns = append(ns, Notice{Level: LevelError, Text: fmt.Sprintf("Error: Could not find data for %s.", symbol)})
		note := pe.Note
		if note == "" {
			note = MsgNoNote
		}
		ns = append(ns, Notice{Level: LevelInfo, Text: "API Note: " + note})
		if pe.Information != "" {
			ns = append(ns, Notice{Level: LevelInfo, Text: "API Information: " + pe.Information})
		}
		if pe.Message != "" {
			ns = append(ns, Notice{Level: LevelError, Text: "API Error: " + pe.Message})
		}
		return append(ns, Notice{Level: LevelWarning, Text: MsgFetchFailed})

	case errors.As(err, &pe):
		cause := error(pe)
		if pe.Err != nil {
			cause = pe.Err
		}
		ns = append(ns, Notice{Level: LevelError, Text: fmt.Sprintf("Error fetching data: %v", cause)})
		return append(ns, Notice{Level: LevelWarning, Text: MsgFetchFailed})

	case errors.Is(err, domain.ErrParse):
		ns = append(ns, Notice{Level: LevelError, Text: fmt.Sprintf("Error: Unexpected data structure from API. %v", err)})
		return append(ns, Notice{Level: LevelWarning, Text: MsgNoData})

	default:
		ns = append(ns, Notice{Level: LevelError, Text: fmt.Sprintf("Error fetching data: %v", err)})
		return append(ns, Notice{Level: LevelWarning, Text: MsgFetchFailed})
	}
}
