// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// リクエストIDの付与、zapによるアクセスログ、パニックリカバリ、
// CORS設定、JWT認証トークンの検証を含む。
package middleware
