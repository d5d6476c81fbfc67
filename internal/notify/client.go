// Package notify pushes draft pick announcements through ntfy.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/config"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/retry"
)

// Pick is the subset of a draft row worth announcing.
type Pick struct {
	Number int
	Player string
	Team   string
}

// Client publishes to one ntfy topic. A disabled client swallows all
// sends, so callers never need to branch.
type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	enabled    bool
	priority   string
}

// NewClient builds an ntfy client. baseURL defaults to the public ntfy.sh
// instance when empty.
func NewClient(baseURL, topic string, enabled bool, priority string) *Client {
	if baseURL == "" {
		baseURL = "https://ntfy.sh"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		topic:      topic,
		enabled:    enabled,
		priority:   priority,
	}
}

// Enabled reports whether sends will actually go out.
func (c *Client) Enabled() bool {
	return c.enabled
}

// AnnouncePicks sends one batch message describing the cycle's new picks.
// Delivery is fire-and-forget from the caller's perspective: failures are
// logged, never returned, so a push outage cannot stall the poll loop.
func (c *Client) AnnouncePicks(ctx context.Context, picks []Pick) {
	if !c.enabled || len(picks) == 0 {
		return
	}
	message := formatPicksMessage(picks)

	go func() {
		if err := c.send(ctx, message); err != nil {
			log.Warn().Err(err).Msg("Failed to send pick notification")
		}
	}()
}

func (c *Client) send(ctx context.Context, message string) error {
	_, err := retry.WithRetry(ctx, config.DefaultResilienceConfig.Notification, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.post(ctx, message)
	})
	return err
}

func (c *Client) post(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, c.topic)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBufferString(message))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	if c.priority != "" {
		req.Header.Set("Priority", c.priority)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("notification rejected: HTTP %d", resp.StatusCode)
	}

	log.Debug().Int("status_code", resp.StatusCode).Msg("Notification sent")
	return nil
}

const maxPicksInMessage = 10

func formatPicksMessage(picks []Pick) string {
	var sb strings.Builder
	if len(picks) == 1 {
		sb.WriteString("New draft pick\n")
	} else {
		fmt.Fprintf(&sb, "%d new draft picks\n", len(picks))
	}

	shown := len(picks)
	if shown > maxPicksInMessage {
		shown = maxPicksInMessage
	}
	for _, pick := range picks[:shown] {
		fmt.Fprintf(&sb, "#%d %s (%s)\n", pick.Number, pick.Player, pick.Team)
	}
	if len(picks) > shown {
		fmt.Fprintf(&sb, "... and %d more\n", len(picks)-shown)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
