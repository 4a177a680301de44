package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSlackPoster struct {
	channel string
	calls   int
	err     error
}

func (m *mockSlackPoster) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	m.calls++
	m.channel = channelID
	return channelID, "1700000000.000100", m.err
}

func TestSlackNotifier_Notify_API(t *testing.T) {
	var text, channel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		text = r.FormValue("text")
		channel = r.FormValue("channel")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":      true,
			"channel": "C123",
			"ts":      "1700000000.000100",
		})
	}))
	defer server.Close()

	notifier := NewSlackNotifier("xoxb-test", "#runs", slack.OptionAPIURL(server.URL+"/"))
	require.NoError(t, notifier.Notify(context.Background(), "Goal reached!"))

	assert.Equal(t, "Goal reached!", text)
	assert.Equal(t, "#runs", channel)
}

func TestSlackNotifier_Notify_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
	}))
	defer server.Close()

	notifier := NewSlackNotifier("xoxb-test", "#missing", slack.OptionAPIURL(server.URL+"/"))
	err := notifier.Notify(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestSlackNotifier_DefaultChannel(t *testing.T) {
	mock := &mockSlackPoster{}
	notifier := NewSlackNotifier("xoxb-test", "")
	notifier.client = mock

	require.NoError(t, notifier.Notify(context.Background(), "hello"))
	assert.Equal(t, "#general", mock.channel)
	assert.Equal(t, 1, mock.calls)

	mock.err = errors.New("boom")
	assert.ErrorContains(t, notifier.Notify(context.Background(), "hello"), "boom")
}
