// Package repository はデータアクセス層のインターフェースと実装を提供する。
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 会話トークンの保持期間。ログインセッションより長めに取ってあり、
// 期限切れ後は単に新規の会話として扱われる。
const conversationTTL = 7 * 24 * time.Hour

// SessionRepository はユーザーごとのセッション状態（AI との会話継続トークン）の
// 読み書きを定義する。
type SessionRepository interface {
	// GetConversationID は保存済みの会話トークンを返す。未保存なら空文字列。
	GetConversationID(ctx context.Context, userID uint) (string, error)
	// SetConversationID はトークンを上書き保存する。空文字列は保存しない。
	// AI 側が空のトークンを返しても、確立済みの会話を消してはならない。
	SetConversationID(ctx context.Context, userID uint, conversationID string) error
	// ClearConversationID は保存済みのトークンを破棄する（ログアウト時）。
	ClearConversationID(ctx context.Context, userID uint) error
}

type redisSessionRepository struct {
	redisClient *redis.Client
}

// NewSessionRepository は新しい SessionRepository を生成する。
func NewSessionRepository(redisClient *redis.Client) SessionRepository {
	return &redisSessionRepository{redisClient: redisClient}
}

func conversationKey(userID uint) string {
	return fmt.Sprintf("user:%d:dify_conversation", userID)
}

// GetConversationID は Redis から会話トークンを取得する。
func (r *redisSessionRepository) GetConversationID(ctx context.Context, userID uint) (string, error) {
	convID, err := r.redisClient.Get(ctx, conversationKey(userID)).Result()
	if err == redis.Nil {
		return "", nil // まだ会話が始まっていない
	}
	if err != nil {
		return "", fmt.Errorf("failed to get conversation id: %w", err)
	}
	return convID, nil
}

// SetConversationID は会話トークンを Redis に保存する。空文字列は無視する。
func (r *redisSessionRepository) SetConversationID(ctx context.Context, userID uint, conversationID string) error {
	if conversationID == "" {
		return nil
	}
	if err := r.redisClient.Set(ctx, conversationKey(userID), conversationID, conversationTTL).Err(); err != nil {
		return fmt.Errorf("failed to set conversation id: %w", err)
	}
	return nil
}

// ClearConversationID は会話トークンを削除する。
func (r *redisSessionRepository) ClearConversationID(ctx context.Context, userID uint) error {
	if err := r.redisClient.Del(ctx, conversationKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear conversation id: %w", err)
	}
	return nil
}
