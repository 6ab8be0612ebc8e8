package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"kintore-coach-go/internal/config"
	"kintore-coach-go/internal/form"
	"kintore-coach-go/pkg/sheets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestBuildPayloadSerializesDateAndOptionals(t *testing.T) {
	rec := &form.Record{
		Date:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Exercise: "ベンチプレス",
		Sets:     3,
		Weight:   floatPtr(60),
		Reps:     intPtr(10),
		Memo:     "",
	}

	payload := BuildPayload("taro", rec)
	assert.Equal(t, "taro", payload.User)
	assert.Equal(t, "2024-05-01", payload.Date)
	assert.Equal(t, "ベンチプレス", payload.Exercise)
	assert.Equal(t, 3, payload.Sets)
	assert.Equal(t, "60", payload.Weight)
	assert.Equal(t, "10", payload.Reps)
	assert.Equal(t, "", payload.Memo)
}

func TestBuildPayloadAbsentOptionalsBecomeEmptyStrings(t *testing.T) {
	rec := &form.Record{
		Date:     time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Exercise: "ランニング",
		Sets:     1,
	}

	payload := BuildPayload("taro", rec)
	assert.Equal(t, "", payload.Weight)
	assert.Equal(t, "", payload.Reps)
}

func TestBuildPayloadPreservesDecimalWeight(t *testing.T) {
	rec := &form.Record{
		Date:     time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		Exercise: "ダンベルカール",
		Sets:     3,
		Weight:   floatPtr(12.5),
	}

	payload := BuildPayload("taro", rec)
	assert.Equal(t, "12.5", payload.Weight)
}

func TestBuildPayloadZeroWeightIsPresent(t *testing.T) {
	// 値としての 0 と未入力は区別される
	rec := &form.Record{
		Date:     time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
		Exercise: "懸垂",
		Sets:     3,
		Weight:   floatPtr(0),
	}

	payload := BuildPayload("taro", rec)
	assert.Equal(t, "0", payload.Weight)
}

// fakeSheetEndpoint はスプレッドシート Web アプリの doPost/doGet を模したインメモリ実装。
type fakeSheetEndpoint struct {
	mu   sync.Mutex
	rows []sheets.Payload
}

func (f *fakeSheetEndpoint) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodPost:
			var row sheets.Payload
			if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			f.rows = append(f.rows, row)
			w.Write([]byte(`{"status":"ok"}`))
		case http.MethodGet:
			user := r.URL.Query().Get("user")
			out := make([]map[string]interface{}, 0)
			for _, row := range f.rows {
				if user != "" && row.User != user {
					continue
				}
				out = append(out, map[string]interface{}{
					"user":     row.User,
					"date":     row.Date,
					"exercise": row.Exercise,
					"sets":     row.Sets,
					"weight":   row.Weight,
					"reps":     row.Reps,
					"memo":     row.Memo,
				})
			}
			json.NewEncoder(w).Encode(out)
		}
	})
}

func TestSubmitThenHistoryRoundTrip(t *testing.T) {
	endpoint := &fakeSheetEndpoint{}
	ts := httptest.NewServer(endpoint.handler())
	defer ts.Close()

	client := sheets.NewClient(config.SheetsConfig{PostURL: ts.URL, GetURL: ts.URL})
	svc := NewRecordService(client)

	rec := &form.Record{
		Date:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Exercise: "ベンチプレス",
		Sets:     3,
		Weight:   floatPtr(60),
		Reps:     intPtr(10),
		Memo:     "",
	}
	require.NoError(t, svc.Submit(context.Background(), "taro", rec))

	// 別ユーザーの記録は取得結果に混ざらない
	other := &form.Record{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Exercise: "スクワット", Sets: 5}
	require.NoError(t, svc.Submit(context.Background(), "jiro", other))

	records, err := svc.History(context.Background(), "taro")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-05-01", records[0].Date.String())
	assert.Equal(t, "ベンチプレス", records[0].Exercise.String())
	assert.Equal(t, "3", records[0].Sets.String())
	assert.Equal(t, "60", records[0].Weight.String())
	assert.Equal(t, "10", records[0].Reps.String())
	assert.True(t, records[0].Memo.IsEmpty(), "空のメモは省略として扱われる")
}

func TestSubmitNotConfiguredIsDistinct(t *testing.T) {
	svc := NewRecordService(sheets.NewClient(config.SheetsConfig{}))
	rec := &form.Record{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Exercise: "x", Sets: 1}
	err := svc.Submit(context.Background(), "taro", rec)
	assert.ErrorIs(t, err, sheets.ErrNotConfigured)
}

func TestHistoryFailureStillReturnsList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	svc := NewRecordService(sheets.NewClient(config.SheetsConfig{GetURL: ts.URL}))
	records, err := svc.History(context.Background(), "taro")
	require.Error(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
