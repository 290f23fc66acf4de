package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Bot sends portal notifications to the company chat bot. Sends are
// fire-and-forget: a failed notification must never fail the business
// operation that triggered it, so callers log the returned error and move
// on.
type Bot struct {
	url        string
	chatID     string
	httpClient *http.Client
}

func NewBot(url, chatID string) *Bot {
	return &Bot{
		url:        url,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type botMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func (b *Bot) Send(ctx context.Context, text string) error {
	if b.url == "" {
		return nil
	}

	body, err := json.Marshal(botMessage{ChatID: b.chatID, Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bot send: unexpected status %d", resp.StatusCode)
	}
	return nil
}
