package usecase

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
	_ "time/tzdata" // プロバイダーのタイムゾーン名（US/Easternなど）を常に解決できるようにする

	"stock_dashboard/internal/feature/quotes/domain"
	"stock_dashboard/internal/feature/quotes/domain/entity"
	"stock_dashboard/internal/feature/quotes/indicator"
)

// timeLayouts はプロバイダーのタイムスタンプとして受け付ける書式です。
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var (
	errNotPositive = errors.New("must be positive and finite")
	errNegative    = errors.New("must not be negative")
	errDuplicate   = errors.New("duplicate timestamp")
)

// Transform は生の時系列データを時刻昇順のSeriesに変換し、SMA20とEMA50を付与します。
//
// パースは厳格で、1件でも不正なレコードがあればバッチ全体を *domain.ParseError で失敗させます。
// 入力が空の場合はエラーではなく、空のSeries（Empty()がtrue）を返します。
func Transform(p entity.RawPayload, symbol string, interval entity.Interval) (entity.Series, error) {
	if p.Empty() {
		return entity.Series{}, nil
	}

	loc := location(p.Meta.TimeZone)

	// マップの反復順序は不定なので、キーを先にソートしてエラー報告を決定的にする
	keys := make([]string, 0, len(p.Bars))
	for k := range p.Bars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]entity.Point, 0, len(keys))
	seen := make(map[int64]string, len(keys))
	for _, k := range keys {
		q, err := parseQuote(k, p.Bars[k], loc)
		if err != nil {
			return entity.Series{}, err
		}
		ts := q.Time.UnixNano()
		if prev, ok := seen[ts]; ok {
			return entity.Series{}, &domain.ParseError{Key: k, Field: "time", Value: k,
				Err: fmt.Errorf("%w: same instant as %q", errDuplicate, prev)}
		}
		seen[ts] = k
		points = append(points, entity.Point{Quote: q})
	}

	// 時刻の昇順に並べ替え
	sort.Slice(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})

	s := entity.Series{
		Symbol:   symbol,
		Interval: interval,
		Location: loc,
		Points:   points,
	}

	closes := s.Closes()
	sma := indicator.SMA(closes, indicator.SMAWindow)
	ema := indicator.EMA(closes, indicator.EMASpan)
	for i := range s.Points {
		s.Points[i].SMA20 = sma[i]
		s.Points[i].EMA50 = ema[i]
	}
	return s, nil
}

// parseQuote は1レコード分の文字列フィールドを数値型に変換します。
func parseQuote(key string, bar entity.RawBar, loc *time.Location) (entity.Quote, error) {
	// タイムスタンプをパース
	tm, err := parseTime(key, loc)
	if err != nil {
		return entity.Quote{}, &domain.ParseError{Key: key, Field: "time", Value: key, Err: err}
	}

	// 始値・高値・安値・終値をパース
	o, err := parsePrice(key, "open", bar.Open)
	if err != nil {
		return entity.Quote{}, err
	}
	h, err := parsePrice(key, "high", bar.High)
	if err != nil {
		return entity.Quote{}, err
	}
	l, err := parsePrice(key, "low", bar.Low)
	if err != nil {
		return entity.Quote{}, err
	}
	c, err := parsePrice(key, "close", bar.Close)
	if err != nil {
		return entity.Quote{}, err
	}

	// 出来高をパース
	vol, err := strconv.ParseInt(bar.Volume, 10, 64)
	if err != nil {
		return entity.Quote{}, &domain.ParseError{Key: key, Field: "volume", Value: bar.Volume, Err: err}
	}
	if vol < 0 {
		return entity.Quote{}, &domain.ParseError{Key: key, Field: "volume", Value: bar.Volume, Err: errNegative}
	}

	return entity.Quote{
		Time:   tm,
		Open:   o,
		High:   h,
		Low:    l,
		Close:  c,
		Volume: vol,
	}, nil
}

func parsePrice(key, field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &domain.ParseError{Key: key, Field: field, Value: raw, Err: err}
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &domain.ParseError{Key: key, Field: field, Value: raw, Err: errNotPositive}
	}
	return v, nil
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	var firstErr error
	for _, layout := range timeLayouts {
		tm, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return tm, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// location はメタデータのタイムゾーン名を解決します。不明な場合はUTCです。
func location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
