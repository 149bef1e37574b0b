// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/quotes/domain"
	"stock_dashboard/internal/feature/quotes/domain/entity"
	"stock_dashboard/internal/feature/quotes/presenter"
	"stock_dashboard/internal/feature/quotes/transport/http/dto"
	"stock_dashboard/internal/feature/quotes/transport/view"
)

// DashboardUsecase はダッシュボード表示用のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DashboardUsecase interface {
	Load(ctx context.Context, symbol, interval string) (entity.Series, error)
}

// DashboardHandler はダッシュボードとクオートAPIのHTTPリクエストを処理します。
type DashboardHandler struct {
	uc DashboardUsecase
}

// NewDashboardHandler は指定されたusecaseでDashboardHandlerの新しいインスタンスを生成します。
func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Page はHTMLダッシュボードを描画します。
// 取得失敗や不正な入力でも200を返し、警告は画面上に表示します。
//
// エンドポイント例:
// GET /?symbol=MSFT&interval=15min
func (h *DashboardHandler) Page(c *gin.Context) {
	rawSymbol := c.DefaultQuery("symbol", entity.DefaultSymbol)
	rawInterval := c.DefaultQuery("interval", entity.DefaultInterval.String())

	series, err := h.uc.Load(c.Request.Context(), rawSymbol, rawInterval)
	symbol, interval := displayInput(rawSymbol, rawInterval)
	v := presenter.BuildView(symbol, interval, series, err)

	page := view.Page{View: v, PlotlyURL: view.PlotlyCDN}
	if v.Figure != nil {
		b, merr := json.Marshal(v.Figure)
		if merr != nil {
			slog.Error("failed to marshal chart", "symbol", symbol, "error", merr)
			page.HasChart = false
		} else {
			page.FigureJSON = template.JS(b)
		}
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, view.DashboardTemplate, page)
}

// GetQuotes は銘柄コードと時間間隔を受け取り、系列・指標・直近データをJSONで返します。
//
// エンドポイント例:
// GET /api/quotes/AAPL?interval=5min
func (h *DashboardHandler) GetQuotes(c *gin.Context) {
	rawSymbol := c.Param("symbol")
	// 未指定の場合はデフォルト値を使用
	rawInterval := c.DefaultQuery("interval", entity.DefaultInterval.String())

	series, err := h.uc.Load(c.Request.Context(), rawSymbol, rawInterval)
	symbol, interval := displayInput(rawSymbol, rawInterval)
	v := presenter.BuildView(symbol, interval, series, err)

	if err != nil {
		c.JSON(StatusFor(err), dto.ErrorResponse{Error: err.Error(), Notices: v.Notices})
		return
	}
	c.JSON(http.StatusOK, dto.NewQuotesResponse(v, series))
}

// StatusFor maps a load error to the API status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrInvalidSymbol), errors.Is(err, domain.ErrInvalidInterval):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrParse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNetwork), errors.Is(err, domain.ErrSchema):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// displayInput returns the symbol and interval to show, falling back when the input is invalid.
func displayInput(rawSymbol, rawInterval string) (string, entity.Interval) {
	symbol, err := entity.NormalizeSymbol(rawSymbol)
	if err != nil {
		symbol = strings.ToUpper(strings.TrimSpace(rawSymbol))
	}
	interval, err := entity.ParseInterval(rawInterval)
	if err != nil {
		interval = entity.DefaultInterval
	}
	return symbol, interval
}
