// Package dify は Dify の chat-messages API クライアントを提供する。
package dify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"kintore-coach-go/internal/config"
	"kintore-coach-go/pkg/log"
)

// ErrNotConfigured は API キーが設定されていないことを示す。
// この場合は外部呼び出しを行わずに即座に失敗する。
var ErrNotConfigured = errors.New("dify: api key not configured")

// defaultChatURL は設定で上書きされない場合の公式エンドポイント。
const defaultChatURL = "https://api.dify.ai/v1/chat-messages"

// 生成には時間がかかるため、記録エンドポイントより長めに待つ。
const requestTimeout = 60 * time.Second

// Reply は 1 回のやり取りで AI から受け取った内容を表す。
type Reply struct {
	Answer string
	// ConversationID は継続用のトークン。サービスの挙動次第で空のこともある。
	ConversationID string
}

// Client はチャットクライアントが満たすインターフェース。
type Client interface {
	// ChatMessage は blocking モードで 1 件の質問を送り、応答を返す。
	// conversationID が空文字列の場合は新規の会話として扱われる。
	ChatMessage(ctx context.Context, query, conversationID, user string) (*Reply, error)
}

type httpClient struct {
	cfg    config.DifyConfig
	client *http.Client
}

// NewClient は設定に基づいて新しい Dify クライアントを生成する。
func NewClient(cfg config.DifyConfig) Client {
	return &httpClient{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

type chatRequest struct {
	Inputs         map[string]interface{} `json:"inputs"`
	Query          string                 `json:"query"`
	ResponseMode   string                 `json:"response_mode"`
	ConversationID string                 `json:"conversation_id"`
	User           string                 `json:"user"`
}

type chatResponse struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversation_id"`
}

// ChatMessage はチャット API を呼び出し、応答から本文を取り出す。
func (c *httpClient) ChatMessage(ctx context.Context, query, conversationID, user string) (*Reply, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	chatURL := c.cfg.ChatURL
	if chatURL == "" {
		chatURL = defaultChatURL
	}

	reqBody := chatRequest{
		Inputs:         map[string]interface{}{},
		Query:          query,
		ResponseMode:   "blocking",
		ConversationID: conversationID,
		User:           user,
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", chatURL, bytes.NewReader(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Errorf("[DifyClient] チャット API の呼び出しに失敗, url: %s, error: %v", chatURL, err)
		return nil, fmt.Errorf("failed to call chat api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Errorf("[DifyClient] チャット API が異常ステータスを返却: %s, body: %s", resp.Status, string(body))
		return nil, fmt.Errorf("chat api returned non-200 status: %s", resp.Status)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		log.Errorf("[DifyClient] チャット API 応答の解析に失敗, error: %v", err)
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}

	return &Reply{
		Answer:         chatResp.Answer,
		ConversationID: chatResp.ConversationID,
	}, nil
}
