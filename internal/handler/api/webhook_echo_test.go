package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"StockSage/internal/domain/models"
	"StockSage/pkg/logger"
	"StockSage/pkg/queue"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	msgType string
	event   models.AnalysisEvent
}

type fakeQueue struct {
	err       error
	published []published
}

func (f *fakeQueue) PublishMessage(ctx context.Context, msgType string, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, published{msgType: msgType, event: payload.(models.AnalysisEvent)})
	return nil
}

func newTestHandler(t *testing.T, q *fakeQueue) *WebhookHandler {
	t.Helper()
	lgr, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	return NewWebhookHandler(lgr, q)
}

func doWebhook(t *testing.T, h *WebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Webhook(e.NewContext(req, rec)))
	return rec
}

func TestWebhookEnqueuesAnalysis(t *testing.T) {
	q := &fakeQueue{}
	h := newTestHandler(t, q)

	rec := doWebhook(t, h, `{"update_id":1001,"message":{"message_id":1,"text":" TCS.NS ","chat":{"id":42}}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, q.published, 1)
	assert.Equal(t, "analysis.request", q.published[0].msgType)
	ev := q.published[0].event
	assert.Equal(t, int64(1001), ev.UpdateID)
	assert.Equal(t, int64(42), ev.ChatID)
	assert.Equal(t, models.EventAnalyze, ev.Kind)
	assert.Equal(t, "TCS.NS", ev.Text)
}

func TestWebhookStartCommand(t *testing.T) {
	q := &fakeQueue{}
	h := newTestHandler(t, q)

	rec := doWebhook(t, h, `{"update_id":1002,"message":{"message_id":2,"text":"/start","chat":{"id":7}}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, q.published, 1)
	assert.Equal(t, models.EventStart, q.published[0].event.Kind)
}

func TestWebhookIgnoresNonTextUpdates(t *testing.T) {
	q := &fakeQueue{}
	h := newTestHandler(t, q)

	for _, body := range []string{
		`{"update_id":1003}`,
		`{"update_id":1004,"message":{"message_id":3,"text":"","chat":{"id":7}}}`,
		`{"update_id":1005,"message":{"message_id":4,"text":"   ","chat":{"id":7}}}`,
	} {
		rec := doWebhook(t, h, body)
		assert.Equal(t, http.StatusOK, rec.Code, "body %s", body)
		assert.Contains(t, rec.Body.String(), "ignored")
	}
	assert.Empty(t, q.published)
}

func TestWebhookMalformedBody(t *testing.T) {
	q := &fakeQueue{}
	h := newTestHandler(t, q)

	rec := doWebhook(t, h, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, q.published)
}

func TestWebhookMissingUpdateID(t *testing.T) {
	q := &fakeQueue{}
	h := newTestHandler(t, q)

	rec := doWebhook(t, h, `{"message":{"message_id":5,"text":"AA","chat":{"id":7}}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, q.published)
}

func TestWebhookQueueFull(t *testing.T) {
	q := &fakeQueue{err: queue.ErrQueueFull}
	h := newTestHandler(t, q)

	rec := doWebhook(t, h, `{"update_id":1006,"message":{"message_id":6,"text":"AA","chat":{"id":7}}}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "retry later")
}

func TestWebhookEnqueueFailure(t *testing.T) {
	q := &fakeQueue{err: assert.AnError}
	h := newTestHandler(t, q)

	rec := doWebhook(t, h, `{"update_id":1007,"message":{"message_id":7,"text":"AA","chat":{"id":7}}}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLiveness(t *testing.T) {
	h := newTestHandler(t, &fakeQueue{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Liveness(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running")
}
