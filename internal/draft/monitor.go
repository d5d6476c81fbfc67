package draft

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Fetcher returns the full current draft result list. The remote client
// owns its own timeout policy.
type Fetcher interface {
	DraftResults(ctx context.Context) ([]map[string]interface{}, error)
}

// Sink receives finalized rows. Append is not idempotent on the sink side;
// the monitor must never resubmit rows it has already handed over.
type Sink interface {
	AppendPicks(ctx context.Context, rows []Row) error
	Timestamp(ctx context.Context) error
}

// Monitor drives fetch, reconcile and export at a fixed cadence. One
// monitor owns one SeenSet; nothing else touches it.
type Monitor struct {
	Fetcher  Fetcher
	Sink     Sink
	Interval time.Duration

	// Resolve optionally maps a player key to a display name before
	// export. Nil leaves rows untouched.
	Resolve func(ctx context.Context, playerKey string) string

	// Notify is called with the rows appended in a cycle. Nil disables it.
	Notify func(ctx context.Context, rows []Row)

	seen SeenSet
}

// Run loops until ctx is cancelled. The in-flight cycle always completes;
// cancellation is only observed at the end-of-cycle sleep.
func (m *Monitor) Run(ctx context.Context) {
	if m.seen == nil {
		m.seen = NewSeenSet()
	}
	interval := m.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	log.Info().
		Dur("interval", interval).
		Msg("Starting draft monitor")

	for cycle := 1; ; cycle++ {
		start := time.Now()
		m.runCycle(ctx, cycle)

		remaining := interval - time.Since(start)
		if remaining < 0 {
			remaining = 0
		}
		select {
		case <-ctx.Done():
			log.Info().Int("cycle", cycle).Msg("Draft monitor stopped")
			return
		case <-time.After(remaining):
		}
	}
}

// runCycle performs one fetch/reconcile/export pass. Fetch and export
// failures are logged and abandoned; the seen set is only advanced by
// reconciliation, so a failed fetch changes nothing and a failed export
// drops those rows for the rest of this run.
func (m *Monitor) runCycle(ctx context.Context, cycle int) {
	results, err := m.Fetcher.DraftResults(ctx)
	if err != nil {
		log.Warn().Err(err).Int("cycle", cycle).Msg("Failed to fetch draft results")
		return
	}

	rows := Reconcile(results, m.seen)
	if len(rows) == 0 {
		log.Debug().
			Int("cycle", cycle).
			Int("total_results", len(results)).
			Msg("No new picks")
		return
	}

	if m.Resolve != nil {
		for i := range rows {
			if name := m.Resolve(ctx, rows[i].Player); name != "" {
				rows[i].Player = name
			}
		}
	}

	if err := m.Sink.AppendPicks(ctx, rows); err != nil {
		log.Error().Err(err).
			Int("cycle", cycle).
			Ints("picks", pickNumbers(rows)).
			Msg("Failed to append picks; these picks will not be retried this run")
		return
	}
	if err := m.Sink.Timestamp(ctx); err != nil {
		log.Warn().Err(err).Int("cycle", cycle).Msg("Failed to refresh timestamp")
	}

	for _, r := range rows {
		log.Info().
			Int("pick", r.Pick).
			Str("player", r.Player).
			Str("team", r.TeamKey).
			Msg("New pick")
	}

	if m.Notify != nil {
		m.Notify(ctx, rows)
	}
}

func pickNumbers(rows []Row) []int {
	picks := make([]int, len(rows))
	for i, r := range rows {
		picks[i] = r.Pick
	}
	return picks
}
