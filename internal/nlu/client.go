package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/agrovivo/biocampo-api/internal/model"
)

// Client talks to the structured-extraction collaborator that turns a raw
// voice transcript into schedule fields. The collaborator owns its own
// retry policy; this client makes a single attempt per transcript.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type extractRequest struct {
	Transcript string `json:"transcript"`
}

func (c *Client) Extract(ctx context.Context, transcript string) (*model.VoiceParseResult, error) {
	body, err := json.Marshal(extractRequest{Transcript: transcript})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nlu request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nlu request: unexpected status %d", resp.StatusCode)
	}

	var result model.VoiceParseResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("nlu response: %w", err)
	}
	return &result, nil
}
