package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/kanban/internal/ports/secondary"
)

func newTestCompleter(url string) *OpenAICompleter {
	c := NewOpenAICompleter(Config{APIKey: "secret", BaseURL: url + "/", Model: "test-model"}, zap.NewNop())
	c.backoff = func(int) time.Duration { return time.Millisecond }
	return c
}

func TestOpenAICompleter_Complete(t *testing.T) {
	var got openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" Two tasks left. "}}]}`))
	}))
	defer srv.Close()

	reply, err := newTestCompleter(srv.URL).Complete(context.Background(), secondary.ChatRequest{
		SystemPrompt: "be brief",
		Context:      `{"dashboardName":"Main"}`,
		History:      []secondary.ChatTurn{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}},
		Message:      "what is left?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Two tasks left.", reply)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 5)
	roles := make([]string, len(got.Messages))
	for i, m := range got.Messages {
		roles[i] = m.Role
	}
	assert.Equal(t, []string{"system", "assistant", "user", "assistant", "user"}, roles)
	assert.Contains(t, got.Messages[1].Content, `"dashboardName":"Main"`)
	assert.Equal(t, "what is left?", got.Messages[4].Content)
}

func TestOpenAICompleter_RetriesRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	reply, err := newTestCompleter(srv.URL).Complete(context.Background(), secondary.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestOpenAICompleter_GivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestCompleter(srv.URL).Complete(context.Background(), secondary.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.Equal(t, int32(maxRetries+1), atomic.LoadInt32(&calls))
}

func TestOpenAICompleter_ClientErrorsAreFinal(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	_, err := newTestCompleter(srv.URL).Complete(context.Background(), secondary.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenAICompleter_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestCompleter(srv.URL).Complete(context.Background(), secondary.ChatRequest{Message: "hi"})
	assert.ErrorContains(t, err, "no completion returned")
}

func TestNew(t *testing.T) {
	completer, err := New(context.Background(), Config{Provider: ProviderOpenAI}, nil)
	require.NoError(t, err)
	assert.Nil(t, completer, "no API key means no completer")

	completer, err = New(context.Background(), Config{Provider: ProviderOpenAI, APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAICompleter{}, completer)

	_, err = New(context.Background(), Config{Provider: "llama", APIKey: "k"}, nil)
	assert.ErrorContains(t, err, "unknown llm provider")
}
