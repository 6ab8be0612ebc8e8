// Package service はアプリの業務ロジック層を含む。
package service

import (
	"context"
	"strconv"

	"kintore-coach-go/internal/form"
	"kintore-coach-go/internal/model"
	"kintore-coach-go/pkg/log"
	"kintore-coach-go/pkg/sheets"
)

// RecordService はトレーニング記録に関する業務操作を定義する。
type RecordService interface {
	// Submit は検証済みの記録を外部シートへ転送する。
	// 保存先 URL 未設定の場合は sheets.ErrNotConfigured を返す。
	Submit(ctx context.Context, username string, rec *form.Record) error
	// History は指定ユーザーの記録一覧を外部シートから取得する。
	// 失敗時も nil ではなく空のスライスを返し、エラーを添える。
	History(ctx context.Context, username string) ([]model.TrainingRecord, error)
}

type recordService struct {
	sheetsClient sheets.Client
}

// NewRecordService は新しい RecordService を生成する。
func NewRecordService(sheetsClient sheets.Client) RecordService {
	return &recordService{sheetsClient: sheetsClient}
}

// BuildPayload は検証済みの記録をシートへ送る JSON ボディへ変換する。
// 日付は ISO-8601、weight と reps は値があれば 10 進文字列、なければ空文字列。
func BuildPayload(username string, rec *form.Record) sheets.Payload {
	payload := sheets.Payload{
		User:     username,
		Date:     rec.Date.Format("2006-01-02"),
		Exercise: rec.Exercise,
		Sets:     rec.Sets,
		Memo:     rec.Memo,
	}
	if rec.Weight != nil {
		payload.Weight = strconv.FormatFloat(*rec.Weight, 'f', -1, 64)
	}
	if rec.Reps != nil {
		payload.Reps = strconv.Itoa(*rec.Reps)
	}
	return payload
}

// Submit は 1 件の記録をシートへ追記する。
func (s *recordService) Submit(ctx context.Context, username string, rec *form.Record) error {
	if err := s.sheetsClient.Append(ctx, BuildPayload(username, rec)); err != nil {
		log.Warnf("[RecordService] 記録の保存に失敗, user: %s, error: %v", username, err)
		return err
	}
	log.Infof("[RecordService] 記録を保存, user: %s, exercise: %s", username, rec.Exercise)
	return nil
}

// History は記録一覧を取得する。エラー時は空リストと併せて返す。
func (s *recordService) History(ctx context.Context, username string) ([]model.TrainingRecord, error) {
	records, err := s.sheetsClient.Fetch(ctx, username)
	if err != nil {
		log.Warnf("[RecordService] 記録の取得に失敗, user: %s, error: %v", username, err)
	}
	return records, err
}
