// Package notify delivers run reports to an optional webhook endpoint.
// Delivery is synchronous and happens after a run completes, so the
// pipeline itself stays single-threaded.
package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/use-agent/wikigrab/config"
)

// Event is the payload sent to the webhook endpoint.
type Event struct {
	Type      string `json:"type"` // "download.completed" or "convert.completed"
	RunID     string `json:"run_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data"`
}

// Notifier posts events to one configured endpoint. An empty URL
// disables it entirely.
type Notifier struct {
	cfg config.WebhookConfig
}

// New builds a Notifier from config.
func New(cfg config.WebhookConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Enabled reports whether a webhook URL is configured.
func (n *Notifier) Enabled() bool { return n.cfg.URL != "" }

// Deliver sends one event synchronously. The request body is signed with
// HMAC-SHA256 when a secret is configured.
// Header: X-Wikigrab-Signature: sha256=<hex>
func (n *Notifier) Deliver(ctx context.Context, eventType, runID string, data any) error {
	if !n.Enabled() {
		return nil
	}

	event := Event{
		Type:      eventType,
		RunID:     runID,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "wikigrab-notify/1.0")

	if n.cfg.Secret != "" {
		mac := hmac.New(sha256.New, []byte(n.cfg.Secret))
		mac.Write(body)
		sig := hex.EncodeToString(mac.Sum(nil))
		req.Header.Set("X-Wikigrab-Signature", "sha256="+sig)
	}

	timeout := n.cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("notify: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
