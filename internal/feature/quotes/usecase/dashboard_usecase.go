// Package usecase は日中足データの取得・変換のビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"

	"stock_dashboard/internal/feature/quotes/domain/entity"
)

// QuoteFetcher は外部プロバイダーから生の日中足データを取得する抽象です。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type QuoteFetcher interface {
	// FetchIntraday は (symbol, interval) の組に対して1回だけ外部呼び出しを行います。
	FetchIntraday(ctx context.Context, symbol string, interval entity.Interval) (entity.RawPayload, error)
}

// DashboardUsecase は入力の正規化、取得、変換を順に行うユースケースです。
type DashboardUsecase struct {
	fetcher QuoteFetcher
}

// NewDashboardUsecase はDashboardUsecaseの新しいインスタンスを生成します。
func NewDashboardUsecase(fetcher QuoteFetcher) *DashboardUsecase {
	return &DashboardUsecase{fetcher: fetcher}
}

// Load は銘柄を大文字に正規化し、時間足を検証したうえでデータを取得し、
// 指標付きのSeriesを返します。
//
// エラーは domain の ErrInvalidSymbol / ErrInvalidInterval / ErrNetwork / ErrSchema / ErrParse
// のいずれかに errors.Is で一致し、呼び出し側で警告表示に変換されます。
func (u *DashboardUsecase) Load(ctx context.Context, symbol, interval string) (entity.Series, error) {
	sym, err := entity.NormalizeSymbol(symbol)
	if err != nil {
		return entity.Series{}, err
	}
	iv, err := entity.ParseInterval(interval)
	if err != nil {
		return entity.Series{}, err
	}

	raw, err := u.fetcher.FetchIntraday(ctx, sym, iv)
	if err != nil {
		return entity.Series{}, err
	}

	s, err := Transform(raw, sym, iv)
	if err != nil {
		slog.Warn("failed to transform quotes", "symbol", sym, "interval", iv, "error", err)
		return entity.Series{}, err
	}
	if s.Empty() {
		slog.Info("provider returned an empty series", "symbol", sym, "interval", iv)
	}
	return s, nil
}
