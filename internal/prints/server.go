package prints

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nao1215/libman/internal/config"
	"github.com/nao1215/libman/pkg/middleware"
)

// 描画層に返す固定のエラーメッセージ。
const (
	msgDatabaseError = "Database Error"
	msgNotFound      = "Print Not Found"
)

// detailLoader はServerが出版物詳細を読み込むために使うインターフェース。
type detailLoader interface {
	Load(ctx context.Context, id int64) (*Detail, error)
}

// Server は出版物詳細サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// addr はサーバーのリッスンアドレス。
	addr string
	// loader は出版物詳細の読み込みを行う。
	loader detailLoader
	// logger は構造化ロガー。
	logger *zap.Logger
	// registry は /metrics で公開するPrometheusレジストリ。
	registry *prometheus.Registry
}

// NewServer は設定から出版物詳細サーバーを生成する。
// cfg.Migrateがtrueの場合、起動前に同梱スキーマをデータベースに適用する。
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg.Migrate {
		if err := migrateFile(context.Background(), cfg.DBPath, logger); err != nil {
			return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	loader := NewLoader(cfg.DBPath,
		WithLogger(logger),
		WithMetrics(NewMetrics(registry)),
	)

	s := newServer(loader, logger, registry, cfg.Addr())
	s.setupRoutes(cfg.JWTSecret, cfg.AllowedOrigins)
	return s, nil
}

func newServer(loader detailLoader, logger *zap.Logger, registry *prometheus.Registry, addr string) *Server {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.AccessLog(logger))

	return &Server{
		router:   router,
		addr:     addr,
		loader:   loader,
		logger:   logger,
		registry: registry,
	}
}

// Handler はルーティング設定済みのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(s.addr)
}

// setupRoutes はAPIルーティングを設定する。
// jwtSecretが空の場合、/api/v1 は認証なしで公開する。
func (s *Server) setupRoutes(jwtSecret string, allowedOrigins []string) {
	s.router.Use(middleware.CORS(allowedOrigins))

	api := s.router.Group("/api/v1")
	if jwtSecret != "" {
		api.Use(middleware.JWTAuth(jwtSecret))
	}
	{
		// 出版物詳細取得
		api.GET("/prints/:id", s.handleGetPrint())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "print-detail"})
	})

	// Prometheusメトリクス
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
}

// handleGetPrint は指定IDの出版物詳細を返すハンドラ。
// パスパラメータ :id を数値として解釈できない場合もデータベースエラーとして扱う。
func (s *Server) handleGetPrint() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.Param("id")
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			s.logger.Error("出版物IDが数値ではありません",
				zap.String("id", rawID),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgDatabaseError})
			return
		}

		detail, err := s.loader.Load(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, ErrPrintNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
				return
			}
			s.logger.Error("出版物詳細の取得に失敗",
				zap.Int64("id", id),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgDatabaseError})
			return
		}

		c.JSON(http.StatusOK, gin.H{"prints": detail})
	}
}
