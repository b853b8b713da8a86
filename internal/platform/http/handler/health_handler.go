// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health はサービス死活確認用の /healthz エンドポイントを処理します。
// プロセスが起動していれば依存の状態に関わらず200を返します。
func Health(c *gin.Context) {
	// ロードバランサーが古い結果を使わないようキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// readyTimeout は依存先ごとの疎通確認の上限です。
const readyTimeout = 2 * time.Second

// Ready は /readyz エンドポイントのハンドラーを返します。
// データベースとRedisへの疎通を確認し、いずれかが落ちていれば503を返します。
// rdbがnilの場合（キャッシュなし構成）、Redisの確認はスキップされます。
func Ready(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		checks := gin.H{"database": "ok"}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			checks["database"] = "unreachable"
		}

		if rdb != nil {
			checks["redis"] = "ok"
			if pingErr := rdb.Ping(ctx).Err(); pingErr != nil {
				checks["redis"] = "unreachable"
			}
		}

		status := http.StatusOK
		for _, state := range checks {
			if state != "ok" {
				status = http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(status, checks)
	}
}
