package dify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"kintore-coach-go/internal/config"
	"kintore-coach-go/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("error", "json", "")
	os.Exit(m.Run())
}

func TestChatMessageSendsBlockingRequest(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Write([]byte(`{"answer":"いい調子です！","conversation_id":"conv-1"}`))
	}))
	defer ts.Close()

	client := NewClient(config.DifyConfig{APIKey: "key-123", ChatURL: ts.URL})
	reply, err := client.ChatMessage(context.Background(), "調子はどう？", "prev-conv", "taro")
	require.NoError(t, err)

	assert.Equal(t, "Bearer key-123", gotAuth)
	assert.Equal(t, "調子はどう？", gotBody["query"])
	assert.Equal(t, "blocking", gotBody["response_mode"])
	assert.Equal(t, "prev-conv", gotBody["conversation_id"])
	assert.Equal(t, "taro", gotBody["user"])
	assert.Equal(t, map[string]interface{}{}, gotBody["inputs"])

	assert.Equal(t, "いい調子です！", reply.Answer)
	assert.Equal(t, "conv-1", reply.ConversationID)
}

func TestChatMessageFailsFastWithoutAPIKey(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	client := NewClient(config.DifyConfig{ChatURL: ts.URL})
	reply, err := client.ChatMessage(context.Background(), "hello", "", "taro")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, reply)
	assert.False(t, called, "キー未設定時は外部呼び出しをしない")
}

func TestChatMessageNon200IsFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewClient(config.DifyConfig{APIKey: "key", ChatURL: ts.URL})
	reply, err := client.ChatMessage(context.Background(), "hello", "", "taro")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, reply)
}

func TestChatMessageEmptyConversationID(t *testing.T) {
	// サービス側の挙動次第で conversation_id が空で返ることがある
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer":"ok"}`))
	}))
	defer ts.Close()

	client := NewClient(config.DifyConfig{APIKey: "key", ChatURL: ts.URL})
	reply, err := client.ChatMessage(context.Background(), "hello", "", "taro")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Answer)
	assert.Equal(t, "", reply.ConversationID)
}
