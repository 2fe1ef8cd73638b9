package prints

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"go.uber.org/zap"

	"github.com/nao1215/libman/pkg/migration"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate は同梱の蔵書管理スキーマをdbに適用する。
// 本番のデータベースは外部で管理されるため、開発用DBとテストでのみ使う。
func Migrate(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	return migration.Run(ctx, db, migrationsFS, "migrations", logger)
}

// migrateFile はpathのSQLiteファイルを書き込み可能な接続で開いてスキーマを適用する。
func migrateFile(ctx context.Context, path string, logger *zap.Logger) error {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("データベース接続に失敗: %w", err)
	}
	defer func() { _ = db.Close() }()

	return Migrate(ctx, db, logger)
}
