// Package sheets はトレーニング記録を保管する外部スプレッドシート Web アプリのクライアントを提供する。
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"kintore-coach-go/internal/config"
	"kintore-coach-go/internal/model"
	"kintore-coach-go/pkg/log"
)

// ErrNotConfigured は対象の URL が設定されていないことを示す。
// 通信エラーとは区別し、呼び出し側は設定不足の案内を表示できる。
var ErrNotConfigured = errors.New("sheets: endpoint not configured")

// ErrBadPayload は応答が JSON として解析できなかったことを示す。
var ErrBadPayload = errors.New("sheets: response is not valid JSON")

// 記録エンドポイントへの呼び出しはこの時間で打ち切る。
const requestTimeout = 10 * time.Second

// Payload はシートへ書き込む 1 件分の JSON ボディを表す。
// weight と reps はシート側の契約に合わせて文字列で送る。値がない場合は空文字列。
type Payload struct {
	User     string `json:"user"`
	Date     string `json:"date"`
	Exercise string `json:"exercise"`
	Sets     int    `json:"sets"`
	Weight   string `json:"weight"`
	Reps     string `json:"reps"`
	Memo     string `json:"memo"`
}

// Client は記録ストアのクライアントが満たすインターフェース。
type Client interface {
	// Append は 1 件の記録をシートへ追記する。リトライはしない。
	Append(ctx context.Context, payload Payload) error
	// Fetch は指定ユーザーの記録一覧をシートから取得する。
	Fetch(ctx context.Context, user string) ([]model.TrainingRecord, error)
}

type httpClient struct {
	cfg    config.SheetsConfig
	client *http.Client
}

// NewClient は設定に基づいて新しいシートクライアントを生成する。
func NewClient(cfg config.SheetsConfig) Client {
	return &httpClient{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// Append は記録を JSON で POST する。2xx 以外と通信エラーはそのまま失敗として返す。
func (c *httpClient) Append(ctx context.Context, payload Payload) error {
	if c.cfg.PostURL == "" {
		return ErrNotConfigured
	}

	reqBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal record payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.PostURL, bytes.NewReader(reqBytes))
	if err != nil {
		return fmt.Errorf("failed to create record request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Errorf("[SheetsClient] 記録の書き込みに失敗, url: %s, error: %v", c.cfg.PostURL, err)
		return fmt.Errorf("failed to call record endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Errorf("[SheetsClient] 記録エンドポイントが異常ステータスを返却: %s, body: %s", resp.Status, string(body))
		return fmt.Errorf("record endpoint returned non-2xx status: %s", resp.Status)
	}

	return nil
}

// Fetch は `?user=` で絞り込んだ記録一覧を GET する。
// URL 未設定の場合はエラーなしの空リストを返す（履歴は単に空として表示される）。
// 通信エラーと解析エラーは区別して返し、どちらの場合も空リストを添える。
func (c *httpClient) Fetch(ctx context.Context, user string) ([]model.TrainingRecord, error) {
	if c.cfg.GetURL == "" {
		return []model.TrainingRecord{}, nil
	}

	reqURL := c.cfg.GetURL + "?user=" + url.QueryEscape(user)
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return []model.TrainingRecord{}, fmt.Errorf("failed to create fetch request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Errorf("[SheetsClient] 記録の取得に失敗, url: %s, error: %v", c.cfg.GetURL, err)
		return []model.TrainingRecord{}, fmt.Errorf("failed to call record endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorf("[SheetsClient] 記録エンドポイントが異常ステータスを返却: %s", resp.Status)
		return []model.TrainingRecord{}, fmt.Errorf("record endpoint returned non-2xx status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return []model.TrainingRecord{}, fmt.Errorf("failed to read fetch response: %w", err)
	}

	var records []model.TrainingRecord
	if err := json.Unmarshal(body, &records); err != nil {
		log.Errorf("[SheetsClient] 記録応答の解析に失敗, error: %v", err)
		return []model.TrainingRecord{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	return records, nil
}
