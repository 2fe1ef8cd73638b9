package prints

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// recordingOpener はOpenSQLiteで開いた接続を記録するOpenerを返す。
func recordingOpener(opened *[]*sql.DB) Opener {
	return func(ctx context.Context, path string) (*sql.DB, error) {
		db, err := OpenSQLite(ctx, path)
		if err == nil {
			*opened = append(*opened, db)
		}
		return db, err
	}
}

// assertClosed は記録された全ての接続が閉じられていることを検証する。
func assertClosed(t *testing.T, opened []*sql.DB) {
	t.Helper()

	if len(opened) != 1 {
		t.Fatalf("開かれた接続数 = %d, want 1", len(opened))
	}
	if err := opened[0].PingContext(context.Background()); err == nil {
		t.Error("Load終了後も接続が閉じられていない")
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("正常系_4つのクエリ結果が1つの詳細にまとめられること", func(t *testing.T) {
		t.Parallel()

		loader := NewLoader(setupTestDB(t))
		d, err := loader.Load(context.Background(), 1)
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}

		if d.Title != "銀河英雄伝説1 黎明篇" {
			t.Errorf("Title = %q", d.Title)
		}
		if strValue(d.PublisherName) != "早川書房" {
			t.Errorf("PublisherName = %q", strValue(d.PublisherName))
		}
		if len(d.RelatedPersons) != 2 || d.RelatedPersons[0].PersonName != "田中芳樹" {
			t.Errorf("RelatedPersons = %+v", d.RelatedPersons)
		}
		if len(d.RelatedLinks) != 2 || !d.RelatedLinks[0].LinkType.IsImage() {
			t.Errorf("RelatedLinks = %+v", d.RelatedLinks)
		}
		if len(d.Contents) != 3 || d.Contents[0].Title != "黎明篇" {
			t.Errorf("Contents = %+v", d.Contents)
		}
	})

	t.Run("正常系_成功後に接続が閉じられていること", func(t *testing.T) {
		t.Parallel()

		var opened []*sql.DB
		loader := NewLoader(setupTestDB(t), WithOpener(recordingOpener(&opened)))
		if _, err := loader.Load(context.Background(), 2); err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		assertClosed(t, opened)
	})

	t.Run("異常系_存在しないIDの場合ErrPrintNotFoundを返し接続が閉じられること", func(t *testing.T) {
		t.Parallel()

		var opened []*sql.DB
		loader := NewLoader(setupTestDB(t), WithOpener(recordingOpener(&opened)))
		d, err := loader.Load(context.Background(), 12345)
		if !errors.Is(err, ErrPrintNotFound) {
			t.Errorf("err = %v, want ErrPrintNotFound", err)
		}
		if d != nil {
			t.Errorf("detail = %+v, want nil", d)
		}
		assertClosed(t, opened)
	})

	t.Run("異常系_途中のクエリが失敗した場合全体が失敗し接続が閉じられること", func(t *testing.T) {
		t.Parallel()

		path := setupTestDB(t)
		execSQL(t, path, "DROP TABLE related_links")

		var opened []*sql.DB
		loader := NewLoader(path, WithOpener(recordingOpener(&opened)))
		d, err := loader.Load(context.Background(), 1)
		if err == nil {
			t.Fatal("related_linksが無い場合エラーが返るべき")
		}
		if errors.Is(err, ErrPrintNotFound) {
			t.Errorf("err = %v, ErrPrintNotFoundであるべきではない", err)
		}
		if d != nil {
			t.Errorf("detail = %+v, want nil", d)
		}
		assertClosed(t, opened)
	})

	t.Run("異常系_データベースファイルが無い場合エラーを返すこと", func(t *testing.T) {
		t.Parallel()

		loader := NewLoader(filepath.Join(t.TempDir(), "missing.db"))
		if _, err := loader.Load(context.Background(), 1); err == nil {
			t.Fatal("存在しないファイルでエラーが返るべき")
		}
	})

	t.Run("異常系_キャンセル済みのコンテキストではエラーを返すこと", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		loader := NewLoader(setupTestDB(t))
		if _, err := loader.Load(ctx, 1); err == nil {
			t.Fatal("キャンセル済みコンテキストでエラーが返るべき")
		}
	})
}

func TestLoader_Metrics(t *testing.T) {
	t.Parallel()

	t.Run("読み込み結果ごとにカウンタが増えること", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		metrics := NewMetrics(reg)
		loader := NewLoader(setupTestDB(t), WithMetrics(metrics))
		ctx := context.Background()

		if _, err := loader.Load(ctx, 1); err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if _, err := loader.Load(ctx, 1); err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		_, _ = loader.Load(ctx, 999)

		if got := testutil.ToFloat64(metrics.loads.WithLabelValues(outcomeOK)); got != 2 {
			t.Errorf("ok = %v, want 2", got)
		}
		if got := testutil.ToFloat64(metrics.loads.WithLabelValues(outcomeNotFound)); got != 1 {
			t.Errorf("not_found = %v, want 1", got)
		}
		if got := testutil.ToFloat64(metrics.loads.WithLabelValues(outcomeError)); got != 0 {
			t.Errorf("error = %v, want 0", got)
		}
		if got := testutil.CollectAndCount(metrics.duration); got != 1 {
			t.Errorf("durationの系列数 = %d, want 1", got)
		}
	})
}
