package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepfish-labs/nimclient/chat"
	"github.com/deepfish-labs/nimclient/config"
	"github.com/deepfish-labs/nimclient/logging"
	"github.com/deepfish-labs/nimclient/retry"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, optFns ...func(o *Options)) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default("nvapi-test")
	cfg.BaseURL = server.URL

	silence := func(o *Options) { o.Logger = logging.NoOpLogger{} }
	return New(cfg, append([]func(o *Options){silence}, optFns...)...)
}

// fastRetries shrinks the backoff base so retry tests stay quick.
func fastRetries(c *Client) {
	c.policy.Base = 1
}

func completionJSON(content string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
}

func TestChatReturnsFirstChoiceContent(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer nvapi-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		fmt.Fprint(w, completionJSON("hello there"))
	})

	out, err := client.Chat(context.Background(), "hi", func(o *chat.Options) {
		o.SystemPrompt = "be terse"
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)

	assert.Equal(t, config.DefaultModel, captured["model"])
	assert.EqualValues(t, chat.DefaultMaxTokens, captured["max_tokens"])
	assert.InDelta(t, chat.DefaultTemperature, captured["temperature"], 1e-9)

	messages := captured["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestChatSurfacesHTTPStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such model", http.StatusNotFound)
	})

	_, err := client.Chat(context.Background(), "hi")

	var statusErr *chat.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "no such model")
}

func TestChatMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices":[]}`},
		{"missing content", `{"choices":[{"message":{"role":"assistant"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})

			_, err := client.Chat(context.Background(), "hi")

			var malformed *chat.MalformedResponseError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestChatRetriesTransientStatuses(t *testing.T) {
	var requests, retried int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests <= 2 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, completionJSON("finally"))
	}, func(o *Options) {
		o.OnRetry = func(int, error) { retried++ }
	})
	fastRetries(client)

	out, err := client.Chat(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "finally", out)
	assert.Equal(t, 3, requests)
	assert.Equal(t, 2, retried)
}

func TestChatExhaustsRetryBudget(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "busy", http.StatusServiceUnavailable)
	})
	fastRetries(client)

	_, err := client.Chat(context.Background(), "hi")

	var statusErr *chat.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, 1+config.DefaultMaxRetries, requests)
}

func TestChatDoesNotRetryTerminalStatuses(t *testing.T) {
	var requests, retried int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "bad request", http.StatusBadRequest)
	}, func(o *Options) {
		o.OnRetry = func(int, error) { retried++ }
	})
	fastRetries(client)

	_, err := client.Chat(context.Background(), "hi")

	var statusErr *chat.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, 1, requests)
	assert.Equal(t, 0, retried)
}

func TestQuickChatPinsFastTier(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))
		fmt.Fprint(w, completionJSON("ok"))
	})

	_, err := client.QuickChat(context.Background(), "hi")
	require.NoError(t, err)

	assert.Equal(t, config.FastModel, captured["model"])
	assert.EqualValues(t, chat.QuickMaxTokens, captured["max_tokens"])
}

func TestDeepChatPinsPowerfulTier(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))
		fmt.Fprint(w, completionJSON("ok"))
	})

	_, err := client.DeepChat(context.Background(), "hi")
	require.NoError(t, err)

	assert.Equal(t, config.PowerfulModel, captured["model"])
	assert.EqualValues(t, chat.DeepMaxTokens, captured["max_tokens"])
}

func TestSessionInitializedOnce(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionJSON("ok"))
	})

	first := client.ensureSession()
	second := client.ensureSession()
	assert.Same(t, first, second)
}

func TestTransientClassification(t *testing.T) {
	assert.True(t, transient(&chat.HTTPStatusError{StatusCode: 429}))
	assert.True(t, transient(&chat.HTTPStatusError{StatusCode: 503}))
	assert.False(t, transient(&chat.HTTPStatusError{StatusCode: 400}))
	assert.False(t, transient(fmt.Errorf("plain failure")))
	assert.True(t, retry.TransientStatus(502))
}
