// Package prints は出版物（Print）詳細ページ用のデータ取得層を提供する。
//
// 蔵書管理データベース（SQLite）から出版物の主レコードを出版社・ブランド・
// シリーズ名を解決した形で取得し、関連人物・関連リンク・目次を別クエリで
// 取得して、描画層がそのまま使える入れ子構造に組み立てる。
// データベースはリクエストごとに開き、処理の成否にかかわらず必ず閉じる。
// このパッケージはデータベースを読み取るだけで、書き込みは行わない。
package prints
