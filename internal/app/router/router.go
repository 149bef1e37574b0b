// Package router はアプリケーションのginルーターを構築します。
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	quoteshandler "stock_dashboard/internal/feature/quotes/transport/handler"
	"stock_dashboard/internal/feature/quotes/transport/view"
	"stock_dashboard/internal/platform/http/handler"
	"stock_dashboard/internal/platform/http/middleware"
)

func NewRouter(logger *slog.Logger, dashboard *quoteshandler.DashboardHandler, health gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(logger), gin.Recovery())
	r.SetHTMLTemplate(view.Templates())

	if health == nil {
		health = handler.Health
	}

	// 導通確認用
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// ダッシュボード画面
	r.GET("/", dashboard.Page)

	api := r.Group("/api")
	{
		api.GET("/quotes/:symbol", dashboard.GetQuotes)
	}

	return r
}
