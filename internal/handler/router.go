package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig ルーター構築に必要な依存関係
type RouterConfig struct {
	Catalog       *CatalogHandler
	Sessions      *SessionHandler
	SubmitFormURL string
	Logger        *zap.Logger
}

// NewRouter はAPIエンドポイントを登録したGinエンジンを返す
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/api/health", HealthCheck)

	cities := r.Group("/cities")
	{
		cities.GET("", cfg.Catalog.ListCities)
		cities.GET("/:city/categories", cfg.Catalog.ListCategories)
		cities.GET("/:city/resources/nearby", cfg.Catalog.Nearby)
	}

	sessions := r.Group("/sessions")
	{
		sessions.POST("", cfg.Sessions.CreateSession)
		sessions.GET("/:id/view", cfg.Sessions.GetView)
		sessions.GET("/:id/map.geojson", cfg.Sessions.GetMapGeoJSON)
		sessions.POST("/:id/location", cfg.Sessions.ResolveLocation)
		sessions.POST("/:id/category", cfg.Sessions.SelectCategory)
		sessions.DELETE("/:id", cfg.Sessions.EndSession)
	}

	r.GET("/submit", SubmitRedirect(cfg.SubmitFormURL))

	return r
}

// SubmitRedirect GET /submit - 新規リソース登録フォームへリダイレクト
func SubmitRedirect(formURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if formURL == "" {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_configured",
				"message": "登録フォームのURLが設定されていません",
			})
			return
		}
		c.Redirect(http.StatusFound, formURL)
	}
}

// RequestLogger はリクエストごとにメソッド・パス・ステータス・所要時間を記録する
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}
