package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/usecase"
)

const pushPath = "/v2/bot/message/push"

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// LineMessenger pushes text messages through the LINE Messaging API
type LineMessenger struct {
	endpoint string
	token    string
	http     *retryablehttp.Client
	log      *slog.Logger
}

// NewLineMessenger creates a LINE messenger from the [line] config
func NewLineMessenger(cfg config.LineConfig, log *slog.Logger) *LineMessenger {
	client := retryablehttp.NewClient()
	client.Logger = log
	client.RetryMax = cfg.MaxRetries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = 10 * time.Second

	return &LineMessenger{
		endpoint: strings.TrimRight(cfg.APIBaseURL, "/") + pushPath,
		token:    cfg.ChannelAccessToken,
		http:     client,
		log:      log,
	}
}

// Push sends a single text message to a user
func (m *LineMessenger) Push(ctx context.Context, to string, text string) error {
	body, err := json.Marshal(pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("failed to encode push message: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.token)

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("line push failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("line push failed: %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}

	m.log.Debug("line message pushed", "to", to)
	return nil
}

// NopMessenger drops messages. Used when no channel token is configured.
type NopMessenger struct {
	log *slog.Logger
}

// NewNopMessenger creates a messenger that only logs
func NewNopMessenger(log *slog.Logger) *NopMessenger {
	return &NopMessenger{log: log}
}

// Push logs the message and returns nil
func (m *NopMessenger) Push(ctx context.Context, to string, text string) error {
	m.log.Debug("line disabled, message dropped", "to", to, "text", text)
	return nil
}

var (
	_ usecase.Messenger = (*LineMessenger)(nil)
	_ usecase.Messenger = (*NopMessenger)(nil)
)
