package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultAPIBaseURL = "https://api.telegram.org/bot"
	timeout           = 10 * time.Second

	// MessageLimit is the largest digest sent as a message. Telegram caps
	// messages at 4096 chars; staying under leaves room for HTML overhead.
	// Longer digests go out as a document instead.
	MessageLimit = 3800
)

// Client represents a Telegram Bot API client bound to one chat.
type Client struct {
	botToken   string
	chatID     string
	apiBaseURL string
	httpClient *http.Client
	newBackOff func() backoff.BackOff
}

// NewClient creates a new Telegram client.
func NewClient(botToken, chatID string) (*Client, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	return &Client{
		botToken:   botToken,
		chatID:     chatID,
		apiBaseURL: defaultAPIBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		newBackOff: func() backoff.BackOff {
			expo := backoff.NewExponentialBackOff()
			expo.InitialInterval = 500 * time.Millisecond
			return backoff.WithMaxRetries(expo, 3)
		},
	}, nil
}

// SendMessage sends an HTML-formatted text message to the configured chat.
// Rate limiting and transient server errors are retried with exponential
// backoff; other API rejections fail immediately.
func (c *Client) SendMessage(text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}

	url := fmt.Sprintf("%s%s/sendMessage", c.apiBaseURL, c.botToken)

	payload := map[string]interface{}{
		"chat_id":                  c.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	operation := func() error {
		req, err := http.NewRequest("POST", url, bytes.NewReader(jsonData))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		return checkResponse(resp)
	}

	return backoff.Retry(operation, c.newBackOff())
}

// SendDocument uploads a file to the configured chat, used when a digest
// outgrows MessageLimit and for the raw snapshot download command.
func (c *Client) SendDocument(path, caption string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("chat_id", c.chatID); err != nil {
		return fmt.Errorf("writing form field: %w", err)
	}
	if caption != "" {
		if err := w.WriteField("caption", caption); err != nil {
			return fmt.Errorf("writing form field: %w", err)
		}
	}

	part, err := w.CreateFormFile("document", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("attaching document: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing form: %w", err)
	}

	url := fmt.Sprintf("%s%s/sendDocument", c.apiBaseURL, c.botToken)

	req, err := http.NewRequest("POST", url, &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	return checkResponse(resp)
}

// Update is one entry from getUpdates.
type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is an incoming chat message.
type Message struct {
	MessageID int    `json:"message_id"`
	From      User   `json:"from"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text"`
}

// User is the sender of a message.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// Chat identifies where a message was sent.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// GetUpdates fetches pending updates. With timeoutSeconds > 0 the call
// long-polls, returning early when something arrives.
func (c *Client) GetUpdates(offset, timeoutSeconds int) ([]Update, error) {
	url := fmt.Sprintf("%s%s/getUpdates", c.apiBaseURL, c.botToken)

	params := []string{}
	if offset > 0 {
		params = append(params, fmt.Sprintf("offset=%d", offset))
	}
	if timeoutSeconds > 0 {
		params = append(params, fmt.Sprintf("timeout=%d", timeoutSeconds))
	}
	if len(params) > 0 {
		url += "?" + strings.Join(params, "&")
	}

	client := c.httpClient
	if timeoutSeconds > 0 {
		// The HTTP timeout needs headroom beyond the long-poll window.
		client = &http.Client{Timeout: time.Duration(timeoutSeconds+10) * time.Second}
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching updates: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool     `json:"ok"`
		Description string   `json:"description"`
		Result      []Update `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("telegram API error: %s", result.Description)
	}

	return result.Result, nil
}

// checkResponse validates a Bot API response. 429s and server errors come
// back as retryable errors; everything else non-OK is permanent.
func checkResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return backoff.Permanent(fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body)))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return backoff.Permanent(fmt.Errorf("parsing response: %w", err))
	}
	if !result.OK {
		return backoff.Permanent(fmt.Errorf("telegram API error: %s", result.Description))
	}

	return nil
}
