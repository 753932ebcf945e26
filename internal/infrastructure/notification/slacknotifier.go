// Package notification delivers operational notifications for number
// lifecycle events.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"numbers/internal/domain/account"
	"numbers/internal/shared/config"
	"numbers/internal/shared/logger"
)

const slackRequestTimeout = 10 * time.Second

type slackMessage struct {
	Text string `json:"text"`
}

// SlackTollFreeNotifier posts US toll-free verification updates to a Slack
// webhook so the compliance team can start or track verification.
type SlackTollFreeNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     logger.Interface
}

func NewSlackTollFreeNotifier(cfg config.NotificationConfig, log logger.Interface) *SlackTollFreeNotifier {
	return &SlackTollFreeNotifier{
		webhookURL: cfg.SlackWebhookURL,
		httpClient: &http.Client{Timeout: slackRequestTimeout},
		logger:     log.Named("slack"),
	}
}

func (n *SlackTollFreeNotifier) NotifyTollFreeAssigned(ctx context.Context, phoneNumber string, owner account.VendorAccountID) error {
	text := fmt.Sprintf("Toll-free number %s assigned to %s, verification required.", phoneNumber, owner.String())
	return n.post(ctx, text)
}

func (n *SlackTollFreeNotifier) NotifyTollFreeStatusChanged(ctx context.Context, phoneNumber string, status *string) error {
	text := fmt.Sprintf("Toll-free number %s verification status cleared.", phoneNumber)
	if status != nil {
		text = fmt.Sprintf("Toll-free number %s verification status changed to %s.", phoneNumber, *status)
	}
	return n.post(ctx, text)
}

func (n *SlackTollFreeNotifier) post(ctx context.Context, text string) error {
	if n.webhookURL == "" {
		n.logger.Debugw("slack webhook not configured, dropping notification", "text", text)
		return nil
	}

	payload, err := json.Marshal(slackMessage{Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack returned status %d", resp.StatusCode)
	}

	return nil
}
