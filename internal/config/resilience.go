package config

import (
	"time"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/retry"
)

// ResilienceConfig groups the retry profiles used outside the poll loop.
// The draft monitor itself never retries a fetch: the next poll cycle is
// the retry.
type ResilienceConfig struct {
	// APIRequest covers the one-shot setup prefetches (league settings,
	// teams, pre-draft analysis).
	APIRequest retry.Config
	// Notification covers push delivery.
	Notification retry.Config
}

var DefaultResilienceConfig = ResilienceConfig{
	APIRequest: retry.Config{
		MaxRetries: 5,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    15 * time.Second,
	},
	Notification: retry.Config{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    10 * time.Second,
	},
}

// InfiniteResilienceConfig is for unattended setup runs where giving up is
// worse than waiting out a long Yahoo outage.
var InfiniteResilienceConfig = ResilienceConfig{
	APIRequest: retry.Config{
		BaseDelay:     1 * time.Second,
		MaxDelay:      30 * time.Second,
		Timeout:       15 * time.Second,
		InfiniteRetry: true,
	},
	Notification: retry.Config{
		BaseDelay:     2 * time.Second,
		MaxDelay:      30 * time.Second,
		Timeout:       10 * time.Second,
		InfiniteRetry: true,
	},
}
