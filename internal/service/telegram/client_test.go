package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	xhttp "StockSage/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplySendsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)

		var req struct {
			ChatID int64  `json:"chat_id"`
			Text   string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.ChatID)
		assert.Equal(t, "📈 AA:\n\nHold.", req.Text)

		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "123:abc")

	err := c.Reply(context.Background(), 42, "📈 AA:\n\nHold.")
	assert.NoError(t, err)
}

func TestReplyNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "123:abc")

	err := c.Reply(context.Background(), 42, "hello")
	assert.Error(t, err)
}
