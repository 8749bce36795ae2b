package sender

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscordSend(t *testing.T) {
	var got discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, sonic.Unmarshal(body, &got))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := Sender(context.Background(), NewDiscordSender(srv.URL), Message{
		Title:   "New call: fusillade",
		Content: "shots fired",
		Urgent:  true,
		Fields: []Field{
			{Name: "Location", Value: "Grove Street"},
			{Name: "Patrol", Value: ""},
		},
	})
	require.NoError(t, err)

	require.Len(t, got.Embeds, 1)
	embed := got.Embeds[0]
	assert.Equal(t, "New call: fusillade", embed.Title)
	assert.Equal(t, discordColorUrgent, embed.Color)
	require.Len(t, embed.Fields, 1, "empty fields are dropped")
	assert.Equal(t, "Grove Street", embed.Fields[0].Value)
}

func TestDiscordRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown webhook", http.StatusNotFound)
	}))
	defer srv.Close()

	err := NewDiscordSender(srv.URL).Send(Message{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.False(t, IsRetriableError(err))
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), DefaultRetry.GetDelay(0))
	assert.Equal(t, time.Second, DefaultRetry.GetDelay(1))
	assert.Equal(t, 4*time.Second, DefaultRetry.GetDelay(3))
	assert.Equal(t, 30*time.Second, DefaultRetry.GetDelay(10))
}

func TestRetryDo(t *testing.T) {
	fast := RetryConfig{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 2}

	t.Run("transient errors are retried", func(t *testing.T) {
		calls := 0
		err := fast.Do(func() error {
			calls++
			if calls < 3 {
				return errors.New("connection reset")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("budget is bounded", func(t *testing.T) {
		calls := 0
		err := fast.Do(func() error {
			calls++
			return errors.New("i/o timeout")
		})
		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent errors stop at once", func(t *testing.T) {
		calls := 0
		err := fast.Do(func() error {
			calls++
			return errors.New("invalid recipient")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestMailBuild(t *testing.T) {
	m := &MailSender{}
	m.cfg.From = "mdt@lspd.example"

	e := m.build(Message{
		Title:   "Your complaint has been received",
		Content: "Hello",
		Fields:  []Field{{Name: "Tracking number", Value: "abc"}},
		To:      []string{"jane@example.com"},
	})
	assert.Equal(t, "mdt@lspd.example", e.From)
	assert.Equal(t, []string{"jane@example.com"}, e.To)
	assert.Equal(t, "Hello\n\nTracking number: abc\n", string(e.Text))

	assert.Error(t, m.Send(Message{Title: "x"}), "no recipient")
}
