package draft

import (
	"fmt"
	"strconv"
	"strings"
)

// Event is a fully validated draft pick after normalization.
type Event struct {
	Pick    int
	Round   string
	TeamKey string
	Player  string
}

// Row is one Draft Results line: round, pick, playerName, teamId, manager.
// Manager is always empty here; the workbook resolves it with a lookup
// against the Teams sheet.
type Row struct {
	Round   string
	Pick    int
	Player  string
	TeamKey string
	Manager string
}

// Values returns the row in sheet column order.
func (r Row) Values() []interface{} {
	return []interface{}{r.Round, r.Pick, r.Player, r.TeamKey, r.Manager}
}

// Normalize converts one raw draft result record into scalar fields.
// Yahoo's XML decodes into loose maps where any value may be wrapped in a
// tagged envelope ("#text", "full" or "name"); all shape tolerance lives
// here so the reconciler only ever sees validated events.
//
// Returns ok=false when the record has no parseable pick number.
func Normalize(raw map[string]interface{}) (Event, bool) {
	pickRaw := strings.TrimSpace(Scalar(raw["pick"]))
	if pickRaw == "" {
		return Event{}, false
	}
	pick, err := strconv.Atoi(pickRaw)
	if err != nil || pick <= 0 {
		return Event{}, false
	}

	teamKey := Scalar(raw["team_key"])
	if teamKey == "" {
		teamKey = Scalar(raw["team_id"])
	}

	return Event{
		Pick:    pick,
		Round:   Scalar(raw["round"]),
		TeamKey: teamKey,
		Player:  playerIdentifier(raw),
	}, true
}

// Scalar unwraps a scalar-or-tagged-text value. Envelope keys are checked
// in priority order: #text, full, name. Nil yields the empty string.
func Scalar(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]interface{}:
		for _, key := range []string{"#text", "full", "name"} {
			if inner, ok := val[key]; ok {
				if s := Scalar(inner); s != "" {
					return s
				}
			}
		}
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// playerIdentifier resolves the player field: explicit player_key first,
// then the nested name structure's full name, then a flat player_name.
func playerIdentifier(raw map[string]interface{}) string {
	if key := Scalar(raw["player_key"]); key != "" {
		return key
	}
	if p, ok := raw["player"].(map[string]interface{}); ok {
		if name, ok := p["name"].(map[string]interface{}); ok {
			if full := Scalar(name["full"]); full != "" {
				return full
			}
		}
	}
	return Scalar(raw["player_name"])
}
