package prints

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Opener はpathのデータベースへの接続を開く。
type Opener func(ctx context.Context, path string) (*sql.DB, error)

// OpenSQLite はpathのSQLiteファイルを読み取り専用の接続として開く。
// ファイルが存在しない場合、空のデータベースを作らずにエラーを返す。
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("データベースファイルを確認できません: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=query_only(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	return db, nil
}

// Loader は出版物詳細を読み込む。
// Loadのたびに接続を開き、終了時に必ず閉じる。
type Loader struct {
	dbPath  string
	open    Opener
	logger  *zap.Logger
	metrics *Metrics
}

// LoaderOption はLoaderの任意設定。
type LoaderOption func(*Loader)

// WithOpener は接続の開き方を差し替える。
func WithOpener(open Opener) LoaderOption {
	return func(l *Loader) {
		l.open = open
	}
}

// WithLogger はロガーを設定する。
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithMetrics はメトリクスの記録先を設定する。
func WithMetrics(m *Metrics) LoaderOption {
	return func(l *Loader) {
		l.metrics = m
	}
}

// NewLoader はdbPathのデータベースを読むLoaderを返す。
func NewLoader(dbPath string, opts ...LoaderOption) *Loader {
	l := &Loader{
		dbPath: dbPath,
		open:   OpenSQLite,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load は指定IDの出版物詳細を読み込む。
// 主レコード、関連人物、関連リンク、目次の順にクエリを逐次発行し、
// どれか1つでも失敗した場合は全体を失敗として返す。
// 主レコードが無い場合はErrPrintNotFoundを返す。
func (l *Loader) Load(ctx context.Context, id int64) (detail *Detail, err error) {
	start := time.Now()
	defer func() {
		l.metrics.observe(start, err)
	}()

	db, err := l.open(ctx, l.dbPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			l.logger.Warn("データベースのクローズに失敗", zap.Error(cerr))
		}
	}()

	return assemble(ctx, NewRepository(db), id)
}

// assemble は4つのクエリ結果を1つのDetailにまとめる。
func assemble(ctx context.Context, repo *Repository, id int64) (*Detail, error) {
	detail, err := repo.GetPrint(ctx, id)
	if err != nil {
		return nil, err
	}

	ref := PrintRef(detail.ID)
	if detail.RelatedPersons, err = repo.ListRelatedPersons(ctx, ref); err != nil {
		return nil, err
	}
	if detail.RelatedLinks, err = repo.ListRelatedLinks(ctx, ref); err != nil {
		return nil, err
	}
	if detail.Contents, err = repo.ListContents(ctx, detail.ID); err != nil {
		return nil, err
	}
	return detail, nil
}
