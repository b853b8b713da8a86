// Package handler はchatフィーチャーのWebSocketハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"forum_backend/internal/feature/auth/transport/middleware"
	"forum_backend/internal/feature/chat/usecase"
	usersentity "forum_backend/internal/feature/users/domain/entity"
)

// writeWait は1回のブロードキャスト書き込みが遅いピアを待つ上限です。
const writeWait = 10 * time.Second

// timedConn は各書き込みの前に期限を設定するSenderです。
// TCPバッファの詰まった接続が他の接続への配信を長時間塞がないようにします。
// gorilla/websocketは同一接続への並行書き込みを許さないため、
// ミューテックスで接続ごとに直列化します。
type timedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (t *timedConn) WriteJSON(v any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return t.conn.WriteJSON(v)
}

// UserResolver はクエリパラメータで渡されたトークンの解決を抽象化します。
// WebSocketのハンドシェイクはカスタムヘッダーを送れないため、
// チャットだけはAuthorizationヘッダーではなくクエリでトークンを受け取ります。
type UserResolver interface {
	ResolveToken(ctx context.Context, token string) (*usersentity.User, error)
}

// ChatHandler はチャットのWebSocket接続を処理します。
type ChatHandler struct {
	resolver UserResolver
	registry *usecase.Registry
	upgrader websocket.Upgrader
}

// NewChatHandler はChatHandlerの新しいインスタンスを生成します。
func NewChatHandler(resolver UserResolver, registry *usecase.Registry) *ChatHandler {
	return &ChatHandler{
		resolver: resolver,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// ブラウザクライアントのオリジンはここでは制限しない
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve はWebSocket接続の全ライフサイクルを処理します。
// - クエリのトークンをアップグレード前に解決し、失敗時は401で拒否
// - 成功時は接続を登録し、participation イベントを全接続にブロードキャスト
// - 受信した各メッセージをそのまま全接続にブロードキャスト
// - 切断時は登録を解除し、退出イベントをブロードキャスト
func (h *ChatHandler) Serve(c *gin.Context) {
	tokenStr, ok := middleware.TokenFromQuery(c)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	user, err := h.resolver.ResolveToken(c.Request.Context(), tokenStr)
	if err != nil {
		// 認証失敗時はアップグレードせず、イベントも流さない
		slog.Warn("chat token resolution failed", "remote_addr", c.ClientIP())
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgradeが失敗した時点でレスポンスは書き込み済み
		slog.Warn("websocket upgrade failed", "error", err, "remote_addr", c.ClientIP())
		return
	}
	defer conn.Close()

	id := h.registry.Register(&timedConn{conn: conn}, user.Username)
	slog.Info("chat connection opened", "user", user.Username, "connection_id", id)

	h.registry.Broadcast(usecase.Event{
		User:       user.Username,
		Message:    "connected to the chat",
		Connection: true,
	})

	for {
		var payload json.RawMessage
		if err := conn.ReadJSON(&payload); err != nil {
			break
		}
		// 受信したメッセージは加工せずに全接続へ中継する
		h.registry.Broadcast(payload)
	}

	h.registry.Unregister(id)
	slog.Info("chat connection closed", "user", user.Username, "connection_id", id)

	h.registry.Broadcast(usecase.Event{
		User:       user.Username,
		Message:    "left the chat",
		Connection: true,
	})
}
