package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ConnectorSender delivers reply activities to the channel's connector
// service at the activity's serviceUrl.
type ConnectorSender struct {
	client *http.Client
}

var _ Sender = (*ConnectorSender)(nil)

// NewConnectorSender creates a sender with a bounded request timeout.
func NewConnectorSender() *ConnectorSender {
	return &ConnectorSender{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SendActivity POSTs the activity to
// {serviceUrl}/v3/conversations/{conversationId}/activities.
func (s *ConnectorSender) SendActivity(ctx context.Context, a *Activity) error {
	if a.ServiceURL == "" {
		return fmt.Errorf("activity has no serviceUrl")
	}
	if a.Conversation == nil || a.Conversation.ID == "" {
		return fmt.Errorf("activity has no conversation id")
	}

	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode activity: %w", err)
	}

	url := fmt.Sprintf("%s/v3/conversations/%s/activities",
		strings.TrimSuffix(a.ServiceURL, "/"), a.Conversation.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver activity to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("connector at %s returned status %d: %s", url, resp.StatusCode, payload)
	}
	return nil
}
