// Package usecase はchatフィーチャーの接続管理とブロードキャストを実装します。
package usecase

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Event はチャットの制御イベントのワイヤ形式です。
// 参加・退出の合図はConnection=trueで送られます。
type Event struct {
	User       string `json:"user"`
	Message    string `json:"message"`
	Connection bool   `json:"connection"`
}

// Sender は登録された接続への書き込みを抽象化します。
// gorilla/websocketの*Connが実装します。テストではフェイクに差し替えます。
type Sender interface {
	WriteJSON(v any) error
}

// registration は開いている接続とそれを開いたユーザーの組です。
type registration struct {
	user   string
	sender Sender
}

// Registry は開いているチャット接続の集合を保持します。
// 登録・解除と集合のスナップショット取得は同じミューテックスで直列化され、
// 更新途中の集合への送信は起こりません。接続への書き込み自体はロックの外で
// 行われるため、遅いピアがいても登録・解除は停止しません。
// プロセスメモリのみに保持され、再起動で失われます。
type Registry struct {
	mu          sync.Mutex
	connections map[uuid.UUID]registration
}

// NewRegistry は空のRegistryを生成します。
func NewRegistry() *Registry {
	return &Registry{connections: make(map[uuid.UUID]registration)}
}

// Register は認証済みの接続を登録し、解除用のIDを返します。
func (r *Registry) Register(sender Sender, user string) uuid.UUID {
	id := uuid.New()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections[id] = registration{user: user, sender: sender}
	return id
}

// Unregister は接続を登録から外します。未知のIDは無視されます。
func (r *Registry) Unregister(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.connections, id)
}

// Len は現在開いている接続の数を返します。
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.connections)
}

// Broadcast はペイロードを開いているすべての接続（送信者自身を含む）に
// そのまま送信します。書き込みに失敗した接続はスキップされ、
// 切断処理はその接続の読み取りループに任せます。
// 集合はロック下でスナップショットし、書き込みはロックの外で行います。
func (r *Registry) Broadcast(payload any) {
	type target struct {
		id  uuid.UUID
		reg registration
	}

	r.mu.Lock()
	targets := make([]target, 0, len(r.connections))
	for id, reg := range r.connections {
		targets = append(targets, target{id: id, reg: reg})
	}
	r.mu.Unlock()

	for _, t := range targets {
		if err := t.reg.sender.WriteJSON(payload); err != nil {
			slog.Warn("chat broadcast write failed", "user", t.reg.user, "connection_id", t.id)
		}
	}
}
