package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// apiBaseURL is a variable so tests can point the client at a local server
var apiBaseURL = "https://discord.com/api/v10"

const timeout = 10 * time.Second

// Message is a rendered channel message, optionally carrying one file
// attachment.
type Message struct {
	Content  string
	FileName string
	FileBody []byte
}

// RateLimitError reports a 429 response and how long Discord asked us to
// wait before retrying.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// Client is a minimal Discord Bot API client for posting channel messages
type Client struct {
	token      string
	channelID  string
	httpClient *http.Client
}

// NewClient creates a new Discord client
func NewClient(token, channelID string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if channelID == "" {
		return nil, fmt.Errorf("channel ID is required")
	}

	return &Client{
		token:      token,
		channelID:  channelID,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SendMessage posts a message to the configured channel. A 429 response is
// returned as a *RateLimitError so callers can honor the retry delay.
func (c *Client) SendMessage(ctx context.Context, msg Message) error {
	if msg.Content == "" {
		return fmt.Errorf("message content is required")
	}

	body, contentType, err := encodeMessage(msg)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/channels/%s/messages", apiBaseURL, c.channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{RetryAfter: parseRetryAfter(respBody)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// encodeMessage builds the request body: JSON for plain messages, multipart
// when an attachment is present.
func encodeMessage(msg Message) (io.Reader, string, error) {
	payload := map[string]interface{}{
		"content": msg.Content,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling payload: %w", err)
	}

	if msg.FileName == "" {
		return bytes.NewReader(jsonData), "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	field, err := w.CreateFormField("payload_json")
	if err != nil {
		return nil, "", fmt.Errorf("creating payload field: %w", err)
	}
	if _, err := field.Write(jsonData); err != nil {
		return nil, "", fmt.Errorf("writing payload field: %w", err)
	}

	file, err := w.CreateFormFile("files[0]", msg.FileName)
	if err != nil {
		return nil, "", fmt.Errorf("creating file field: %w", err)
	}
	if _, err := file.Write(msg.FileBody); err != nil {
		return nil, "", fmt.Errorf("writing file field: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// parseRetryAfter reads the retry_after field of a 429 body. Discord
// reports it in seconds, possibly fractional. Falls back to one second when
// the body is unreadable.
func parseRetryAfter(body []byte) time.Duration {
	var result struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.RetryAfter <= 0 {
		return time.Second
	}
	return time.Duration(result.RetryAfter * float64(time.Second))
}
