// Package config は環境変数からサービスの設定を読み込む。
package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config はprint-detailサービスの設定。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string `envconfig:"PORT" default:"8080"`
	// DBPath は蔵書管理データベース（SQLiteファイル）のパス。
	DBPath string `envconfig:"LIBMANDB_PATH" required:"true"`
	// Migrate がtrueの場合、起動時に同梱スキーマを適用する（開発用）。
	Migrate bool `envconfig:"LIBMANDB_MIGRATE" default:"false"`
	// JWTSecret が空でなければ /api/v1 にJWT認証をかける。
	JWTSecret string `envconfig:"JWT_SECRET"`
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	// LogDevelopment がtrueの場合zapの開発用設定でログを出力する。
	LogDevelopment bool `envconfig:"LOG_DEVELOPMENT" default:"false"`
}

// Addr はgin.Engine.Runに渡すリッスンアドレスを返す。
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Load は .env（存在すれば）と環境変数から設定を読み込む。
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Process()
}

// Process は環境変数のみから設定を読み込む。
func Process() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("環境変数の読み込みに失敗: %w", err)
	}
	if c.DBPath == "" {
		return nil, errors.New("LIBMANDB_PATHが空です")
	}
	return &c, nil
}
