package openrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	drepo "StockSage/internal/domain/repository"
	xhttp "StockSage/pkg/http"
)

// ErrBadResponse means the narrative service answered but unusably: non-2xx
// status, malformed body, or no choices. Network-level faults are returned
// unwrapped so the caller can classify them as transport errors.
var ErrBadResponse = errors.New("narrative service returned unusable response")

// Client implements Narrator backed by the OpenRouter chat-completions API.
type Client struct {
	http    *xhttp.Client
	baseURL string
	apiKey  string
	model   string
}

// New creates a new OpenRouter narrative client with a fixed model id.
func New(httpClient *xhttp.Client, baseURL, apiKey, model string) drepo.Narrator {
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Narrate sends the prompt and returns the first completion choice.
func (c *Client) Narrate(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	var resp chatResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/chat/completions",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
			"Content-Type":  "application/json",
		},
		Body: req,
	}, &resp)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			return "", fmt.Errorf("%w: status %d", ErrBadResponse, se.Status)
		}
		if strings.Contains(err.Error(), "decode json") {
			return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
		return "", fmt.Errorf("narrative request: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty choices", ErrBadResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
