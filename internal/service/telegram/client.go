package telegram

import (
	"context"
	"fmt"

	drepo "StockSage/internal/domain/repository"
	xhttp "StockSage/pkg/http"
)

// Client implements Replier via the Telegram Bot API sendMessage call.
type Client struct {
	http    *xhttp.Client
	baseURL string
	token   string
}

// New creates a new Telegram reply client.
func New(httpClient *xhttp.Client, baseURL, token string) drepo.Replier {
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		token:   token,
	}
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// Reply delivers text to the originating conversation.
func (c *Client) Reply(ctx context.Context, chatID int64, text string) error {
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token),
		Body: sendMessageRequest{
			ChatID: chatID,
			Text:   text,
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
