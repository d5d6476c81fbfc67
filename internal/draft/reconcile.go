package draft

import (
	"sort"

	"github.com/rs/zerolog/log"
)

// SeenSet tracks pick numbers already emitted during this run. It grows
// monotonically and is never persisted; a restart re-processes the full
// draft history. The reconciler owns all mutation.
type SeenSet map[int]struct{}

// NewSeenSet returns an empty seen set.
func NewSeenSet() SeenSet {
	return make(SeenSet)
}

// Contains reports whether pick has already been emitted.
func (s SeenSet) Contains(pick int) bool {
	_, ok := s[pick]
	return ok
}

func (s SeenSet) add(pick int) {
	s[pick] = struct{}{}
}

// Reconcile computes the not-yet-emitted subset of the full draft result
// list, in ascending pick order, and records the emitted picks in seen.
//
// Malformed records (missing or non-integer pick) are skipped without
// touching the seen set; a bad record never stops the rest of the batch.
// The API does not guarantee list order, so rows are sorted before return —
// the export sinks assume monotonically increasing picks.
func Reconcile(events []map[string]interface{}, seen SeenSet) []Row {
	var rows []Row
	skipped := 0

	for _, raw := range events {
		ev, ok := Normalize(raw)
		if !ok {
			skipped++
			continue
		}
		if seen.Contains(ev.Pick) {
			continue
		}
		rows = append(rows, Row{
			Round:   ev.Round,
			Pick:    ev.Pick,
			Player:  ev.Player,
			TeamKey: ev.TeamKey,
			Manager: "",
		})
		seen.add(ev.Pick)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Pick < rows[j].Pick })

	if skipped > 0 {
		log.Debug().
			Int("skipped", skipped).
			Int("new", len(rows)).
			Msg("Skipped malformed draft results")
	}

	return rows
}
