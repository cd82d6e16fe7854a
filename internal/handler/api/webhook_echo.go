package api

import (
	"errors"
	"net/http"
	"strings"

	"StockSage/internal/domain/models"
	"StockSage/internal/service/telegram"
	"StockSage/internal/usecase"
	xhttp "StockSage/pkg/http"
	"StockSage/pkg/logger"
	"StockSage/pkg/queue"

	"github.com/labstack/echo/v4"
)

// WebhookHandler accepts inbound bot updates and enqueues them. The request
// path only binds, validates and enqueues — the analysis itself runs on the
// dispatcher workers, so the acknowledgement never waits on downstream
// latency.
type WebhookHandler struct {
	log *logger.Logger
	q   queue.QueueService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(lgr *logger.Logger, q queue.QueueService) *WebhookHandler {
	return &WebhookHandler{log: lgr, q: q}
}

// RegisterRoutes registers the webhook and liveness endpoints.
func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhook", h.Webhook)
	e.GET("/", h.Liveness)
	e.GET("/healthz", h.Liveness)
}

// Webhook handles one inbound update.
func (h *WebhookHandler) Webhook(c echo.Context) error {
	upd := &telegram.Update{}
	if verr := xhttp.ReadAndValidateRequest(c, upd); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	// Updates without message text (edits, joins, stickers) are
	// acknowledged so the bot framework stops redelivering them.
	if upd.Message == nil || strings.TrimSpace(upd.Message.Text) == "" {
		return xhttp.SuccessResponse(c, "ignored")
	}

	text := strings.TrimSpace(upd.Message.Text)
	kind := models.EventAnalyze
	if strings.HasPrefix(text, "/start") {
		kind = models.EventStart
	}

	ev := models.AnalysisEvent{
		UpdateID: upd.UpdateID,
		ChatID:   upd.Message.Chat.ID,
		Kind:     kind,
		Text:     text,
	}

	if err := h.q.PublishMessage(c.Request().Context(), usecase.EventTypeAnalysis, ev); err != nil {
		if errors.Is(err, queue.ErrQueueFull) {
			h.log.Warn("intake queue full, rejecting update",
				logger.Int64("update_id", ev.UpdateID))
			return xhttp.ServiceUnavailableResponse(c, "queue full, retry later")
		}
		h.log.Error("enqueue failed",
			logger.Int64("update_id", ev.UpdateID),
			logger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("enqueue failed").WithError(err))
	}

	return xhttp.SuccessResponse(c, "ok")
}

// Liveness reports that the process is up. Used by infrastructure health
// checks; not part of the analysis pipeline.
func (h *WebhookHandler) Liveness(c echo.Context) error {
	return c.String(http.StatusOK, "StockSage bot is running")
}
