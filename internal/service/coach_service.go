// Package service はアプリの業務ロジック層を含む。
package service

import (
	"context"
	"errors"
	"strings"

	"kintore-coach-go/internal/model"
	"kintore-coach-go/internal/repository"
	"kintore-coach-go/pkg/dify"
	"kintore-coach-go/pkg/log"
	"kintore-coach-go/pkg/sheets"
)

// ErrEmptyMessage は空のメッセージが送信されたことを示す。
// 外部呼び出しを行う前に弾くクライアントエラー。
var ErrEmptyMessage = errors.New("message is required")

// 記録がある場合に要約の先頭へ置く固定プロンプト。
const summaryPrompt = "以下が私のトレーニング記録です。褒めて、アドバイスをください。"

// 記録がまだない場合に使う固定プロンプト。
const beginnerPrompt = "まだトレーニング記録がありません。これから始める人に向けて励ましとアドバイスをください。"

// CoachService は AI コーチに関する業務操作を定義する。
type CoachService interface {
	// Advice は利用者の記録を要約して AI に送り、アドバイス本文を返す。
	// 会話は毎回新規に始める。
	Advice(ctx context.Context, username string) (string, error)
	// Chat は利用者のメッセージを保存済みの会話トークンと共に AI へ送る。
	// 応答に新しいトークンが含まれていればセッションへ保存する。
	Chat(ctx context.Context, userID uint, username, message string) (*dify.Reply, error)
}

type coachService struct {
	sheetsClient sheets.Client
	difyClient   dify.Client
	sessionRepo  repository.SessionRepository
}

// NewCoachService は新しい CoachService を生成する。
func NewCoachService(sheetsClient sheets.Client, difyClient dify.Client, sessionRepo repository.SessionRepository) CoachService {
	return &coachService{
		sheetsClient: sheetsClient,
		difyClient:   difyClient,
		sessionRepo:  sessionRepo,
	}
}

// BuildSummaryQuery は記録一覧から AI へ送る質問文を組み立てる。
// 各記録は値のある項目だけを 日付 / 種目 / Nセット / Wkg / R回 / (メモ) の順で
// " / " 区切りの 1 行にする。記録が 1 件もなければ初心者向けプロンプトを返す。
func BuildSummaryQuery(records []model.TrainingRecord) string {
	if len(records) == 0 {
		return beginnerPrompt
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		parts := make([]string, 0, 6)
		if !r.Date.IsEmpty() {
			parts = append(parts, r.Date.String())
		}
		if !r.Exercise.IsEmpty() {
			parts = append(parts, r.Exercise.String())
		}
		if !r.Sets.IsEmpty() {
			parts = append(parts, r.Sets.String()+"セット")
		}
		if !r.Weight.IsEmpty() {
			parts = append(parts, r.Weight.String()+"kg")
		}
		if !r.Reps.IsEmpty() {
			parts = append(parts, r.Reps.String()+"回")
		}
		if !r.Memo.IsEmpty() {
			parts = append(parts, "("+r.Memo.String()+")")
		}
		lines = append(lines, strings.Join(parts, " / "))
	}

	return summaryPrompt + "\n\n" + strings.Join(lines, "\n")
}

// Advice は記録の取得・要約・AI への問い合わせを順に行う。
// 記録の取得に失敗しても中断せず、記録なしとして続行する。
func (s *coachService) Advice(ctx context.Context, username string) (string, error) {
	records, err := s.sheetsClient.Fetch(ctx, username)
	if err != nil {
		log.Warnf("[CoachService] アドバイス用の記録取得に失敗, user: %s, error: %v", username, err)
		records = nil
	}

	query := BuildSummaryQuery(records)

	// アドバイスは独立した問い合わせなので会話を継続しない
	reply, err := s.difyClient.ChatMessage(ctx, query, "", username)
	if err != nil {
		return "", err
	}
	return reply.Answer, nil
}

// Chat はメッセージを検証し、会話トークンを引き継いで AI へ送る。
func (s *coachService) Chat(ctx context.Context, userID uint, username, message string) (*dify.Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	// 保存済みトークンの取得に失敗しても新規会話として続行する
	conversationID, err := s.sessionRepo.GetConversationID(ctx, userID)
	if err != nil {
		log.Warnf("[CoachService] 会話トークンの取得に失敗, userID: %d, error: %v", userID, err)
		conversationID = ""
	}

	reply, err := s.difyClient.ChatMessage(ctx, message, conversationID, username)
	if err != nil {
		// 失敗時は保存済みトークンに触れない。次回の送信でそのまま使える。
		return nil, err
	}

	// 空のトークンは保存しない（リポジトリ側でも弾かれる）
	if err := s.sessionRepo.SetConversationID(ctx, userID, reply.ConversationID); err != nil {
		log.Warnf("[CoachService] 会話トークンの保存に失敗, userID: %d, error: %v", userID, err)
	}

	return reply, nil
}
