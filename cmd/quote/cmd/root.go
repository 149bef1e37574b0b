// Package cmd implements the quote CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/config"
	"stock_dashboard/internal/feature/quotes/domain/entity"
	"stock_dashboard/internal/feature/quotes/presenter"
	"stock_dashboard/internal/platform/logging"
	infraredis "stock_dashboard/internal/platform/redis"
)

// Loader loads one indicator-augmented series.
type Loader interface {
	Load(ctx context.Context, symbol, interval string) (entity.Series, error)
}

// LoaderFactory builds a Loader from the config file at path. The returned func releases it.
type LoaderFactory func(ctx context.Context, path string) (Loader, func(), error)

// errFetch marks a run that rendered notices instead of data.
var errFetch = errors.New("no data rendered")

// NewRootCmd builds the command tree. newLoader is replaced in tests.
func NewRootCmd(newLoader LoaderFactory) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "quote",
		Short: "Render Alpha Vantage intraday quotes in the terminal",
		Long: `quote fetches intraday OHLCV data for one ticker and prints
the latest metrics, a recent data table or the Plotly chart figure.

The Alpha Vantage key is read from ALPHAVANTAGE_API_KEY, .env or the config file.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_FILE or config.yaml)")

	load := func(cmd *cobra.Command, symbol, interval string) (presenter.View, error) {
		l, closeFn, err := newLoader(cmd.Context(), configPath)
		if err != nil {
			return presenter.View{}, err
		}
		defer closeFn()

		series, lerr := l.Load(cmd.Context(), symbol, interval)
		sym, iv := displayInput(symbol, interval)
		v := presenter.BuildView(sym, iv, series, lerr)
		printNotices(cmd.ErrOrStderr(), v.Notices)
		if lerr != nil {
			return v, fmt.Errorf("%w: %w", errFetch, lerr)
		}
		return v, nil
	}

	root.AddCommand(newShowCmd(load), newChartCmd(load))
	return root
}

// Execute runs the CLI with the production loader.
func Execute() error {
	return NewRootCmd(defaultLoader).ExecuteContext(context.Background())
}

func defaultLoader(ctx context.Context, path string) (Loader, func(), error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	// stdout is reserved for output.
	slog.SetDefault(logging.NewLogger(os.Stderr, logging.Config{Level: cfg.Log.Level, Format: logging.FormatText}))

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb, err = infraredis.NewRedisClient(ctx, infraredis.Config{
			Host: cfg.Redis.Host, Port: cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB,
		})
		if err != nil {
			slog.Warn("Redis unavailable. Running without shared cache.", "error", err)
			rdb = nil
		}
	}
	closeFn := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
	}
	return di.NewDashboardUsecase(cfg, rdb), closeFn, nil
}

func displayInput(symbol, interval string) (string, entity.Interval) {
	sym, err := entity.NormalizeSymbol(symbol)
	if err != nil {
		sym = symbol
	}
	iv, err := entity.ParseInterval(interval)
	if err != nil {
		iv = entity.DefaultInterval
	}
	return sym, iv
}

func printNotices(w io.Writer, notices []presenter.Notice) {
	for _, n := range notices {
		fmt.Fprintf(w, "[%s] %s\n", n.Level, n.Text)
	}
}
