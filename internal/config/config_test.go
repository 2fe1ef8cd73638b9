package config

import (
	"os"
	"testing"
)

// unsetenv はテスト終了時に元の値を復元した上で環境変数を削除する。
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("環境変数 %s の削除に失敗: %v", k, err)
		}
	}
}

func TestProcess(t *testing.T) {
	t.Run("必須項目のみ設定した場合デフォルト値が使われること", func(t *testing.T) {
		unsetenv(t, "PORT", "LIBMANDB_MIGRATE", "JWT_SECRET", "CORS_ALLOWED_ORIGINS", "LOG_DEVELOPMENT")
		t.Setenv("LIBMANDB_PATH", "/data/libman.db")

		cfg, err := Process()
		if err != nil {
			t.Fatalf("Process()でエラーが発生: %v", err)
		}
		if cfg.DBPath != "/data/libman.db" {
			t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/data/libman.db")
		}
		if cfg.Addr() != ":8080" {
			t.Errorf("Addr() = %q, want %q", cfg.Addr(), ":8080")
		}
		if cfg.Migrate {
			t.Error("Migrateのデフォルトはfalseであるべき")
		}
		if cfg.JWTSecret != "" {
			t.Errorf("JWTSecret = %q, want empty string", cfg.JWTSecret)
		}
		if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
			t.Errorf("AllowedOrigins = %v, want [http://localhost:5173]", cfg.AllowedOrigins)
		}
	})

	t.Run("環境変数で値を上書きできること", func(t *testing.T) {
		t.Setenv("LIBMANDB_PATH", "/tmp/x.db")
		t.Setenv("PORT", "9090")
		t.Setenv("LIBMANDB_MIGRATE", "true")
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

		cfg, err := Process()
		if err != nil {
			t.Fatalf("Process()でエラーが発生: %v", err)
		}
		if cfg.Addr() != ":9090" {
			t.Errorf("Addr() = %q, want %q", cfg.Addr(), ":9090")
		}
		if !cfg.Migrate {
			t.Error("Migrate = false, want true")
		}
		if cfg.JWTSecret != "s3cret" {
			t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "s3cret")
		}
		if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
			t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
		}
	})

	t.Run("LIBMANDB_PATHが未設定の場合エラーになること", func(t *testing.T) {
		unsetenv(t, "LIBMANDB_PATH")

		if _, err := Process(); err == nil {
			t.Fatal("LIBMANDB_PATH未設定でエラーが返るべき")
		}
	})

	t.Run("LIBMANDB_PATHが空文字列の場合エラーになること", func(t *testing.T) {
		t.Setenv("LIBMANDB_PATH", "")

		if _, err := Process(); err == nil {
			t.Fatal("LIBMANDB_PATHが空でエラーが返るべき")
		}
	})
}
