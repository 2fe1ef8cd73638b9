// 出版物詳細サービスのエントリポイント。
// 蔵書管理データベースから出版物の詳細を取得し、描画層向けのJSONとして返す。
package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/nao1215/libman/internal/config"
	"github.com/nao1215/libman/internal/prints"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	logger, err := newLogger(cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	server, err := prints.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("出版物詳細サーバーの初期化に失敗", zap.Error(err))
	}

	logger.Info("出版物詳細サービスを起動します",
		zap.String("addr", cfg.Addr()),
		zap.String("db_path", cfg.DBPath),
		zap.Bool("jwt", cfg.JWTSecret != ""),
	)
	if err := server.Run(); err != nil {
		logger.Fatal("出版物詳細サービスの起動に失敗", zap.Error(err))
	}
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
