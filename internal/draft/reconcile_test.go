package draft

import (
	"reflect"
	"testing"
)

func event(fields map[string]interface{}) map[string]interface{} {
	return fields
}

func picks(rows []Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Pick
	}
	return out
}

func TestReconcileOrdersByPick(t *testing.T) {
	events := []map[string]interface{}{
		event(map[string]interface{}{"pick": "3", "player_key": "nhl.p.3"}),
		event(map[string]interface{}{"pick": "1", "player_key": "nhl.p.1"}),
		event(map[string]interface{}{"pick": "2", "player_key": "nhl.p.2"}),
	}
	seen := NewSeenSet()

	rows := Reconcile(events, seen)

	if got, want := picks(rows), []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Expected picks %v, got %v", want, got)
	}
	for _, p := range []int{1, 2, 3} {
		if !seen.Contains(p) {
			t.Errorf("Expected seen set to contain %d", p)
		}
	}
	if len(seen) != 3 {
		t.Errorf("Expected seen set size 3, got %d", len(seen))
	}
}

func TestReconcileIdempotent(t *testing.T) {
	events := []map[string]interface{}{
		event(map[string]interface{}{"pick": "1", "player_key": "nhl.p.1"}),
		event(map[string]interface{}{"pick": "2", "player_key": "nhl.p.2"}),
	}
	seen := NewSeenSet()

	first := Reconcile(events, seen)
	if len(first) != 2 {
		t.Fatalf("Expected 2 rows on first call, got %d", len(first))
	}

	second := Reconcile(events, seen)
	if len(second) != 0 {
		t.Errorf("Expected empty result on second call, got %d rows", len(second))
	}
}

func TestReconcileSkipsMalformed(t *testing.T) {
	seen := NewSeenSet()
	Reconcile([]map[string]interface{}{
		event(map[string]interface{}{"pick": "1", "player_key": "px"}),
	}, seen)

	rows := Reconcile([]map[string]interface{}{
		event(map[string]interface{}{"pick": "1", "player_key": "dup"}),
		event(map[string]interface{}{"pick": "not_int"}),
		event(map[string]interface{}{"pick": nil}),
		event(map[string]interface{}{"round": "2"}),
	}, seen)

	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %v", rows)
	}
	if len(seen) != 1 || !seen.Contains(1) {
		t.Errorf("Expected seen set {1}, got %v", seen)
	}
}

func TestReconcileMalformedDoesNotStopBatch(t *testing.T) {
	seen := NewSeenSet()
	rows := Reconcile([]map[string]interface{}{
		event(map[string]interface{}{"pick": "garbage"}),
		event(map[string]interface{}{"pick": "5", "player_key": "nhl.p.5"}),
	}, seen)

	if got, want := picks(rows), []int{5}; !reflect.DeepEqual(got, want) {
		t.Errorf("Expected picks %v, got %v", want, got)
	}
}

func TestReconcileAtMostOnceAcrossCalls(t *testing.T) {
	seen := NewSeenSet()
	emitted := make(map[int]int)

	batches := [][]map[string]interface{}{
		{
			event(map[string]interface{}{"pick": "2", "player_key": "b"}),
			event(map[string]interface{}{"pick": "1", "player_key": "a"}),
		},
		{
			event(map[string]interface{}{"pick": "1", "player_key": "a"}),
			event(map[string]interface{}{"pick": "2", "player_key": "b"}),
			event(map[string]interface{}{"pick": "3", "player_key": "c"}),
		},
		{
			event(map[string]interface{}{"pick": "3", "player_key": "c"}),
		},
	}

	for _, batch := range batches {
		for _, row := range Reconcile(batch, seen) {
			emitted[row.Pick]++
		}
	}

	for pick, count := range emitted {
		if count > 1 {
			t.Errorf("Pick %d emitted %d times, expected at most once", pick, count)
		}
	}
	if len(emitted) != 3 {
		t.Errorf("Expected 3 distinct picks emitted, got %d", len(emitted))
	}
}

func TestReconcileRowShape(t *testing.T) {
	seen := NewSeenSet()
	rows := Reconcile([]map[string]interface{}{
		event(map[string]interface{}{
			"pick":     map[string]interface{}{"#text": "7"},
			"round":    map[string]interface{}{"#text": "1"},
			"team_key": "461.l.1234.t.3",
			"player":   map[string]interface{}{"name": map[string]interface{}{"full": "Connor McDavid"}},
		}),
	}, seen)

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	want := Row{Round: "1", Pick: 7, Player: "Connor McDavid", TeamKey: "461.l.1234.t.3", Manager: ""}
	if rows[0] != want {
		t.Errorf("Expected row %+v, got %+v", want, rows[0])
	}
	values := rows[0].Values()
	if len(values) != 5 {
		t.Errorf("Expected 5 row values, got %d", len(values))
	}
	if values[4] != "" {
		t.Errorf("Expected empty manager column, got %v", values[4])
	}
}

func TestNormalizePlayerFallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		raw    map[string]interface{}
		player string
	}{
		{
			name: "explicit player key wins",
			raw: map[string]interface{}{
				"pick":        "1",
				"player_key":  "461.p.8478402",
				"player":      map[string]interface{}{"name": map[string]interface{}{"full": "Ignored"}},
				"player_name": "Also Ignored",
			},
			player: "461.p.8478402",
		},
		{
			name: "nested full name",
			raw: map[string]interface{}{
				"pick":   "2",
				"player": map[string]interface{}{"name": map[string]interface{}{"full": "Nathan MacKinnon"}},
			},
			player: "Nathan MacKinnon",
		},
		{
			name: "flat player_name",
			raw: map[string]interface{}{
				"pick":        "3",
				"player_name": "Cale Makar",
			},
			player: "Cale Makar",
		},
		{
			name:   "nothing resolvable",
			raw:    map[string]interface{}{"pick": "4"},
			player: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := Normalize(tt.raw)
			if !ok {
				t.Fatal("Expected event to normalize")
			}
			if ev.Player != tt.player {
				t.Errorf("Expected player %q, got %q", tt.player, ev.Player)
			}
		})
	}
}

func TestNormalizeRejectsBadPicks(t *testing.T) {
	bad := []map[string]interface{}{
		{"pick": nil},
		{"pick": ""},
		{"pick": "abc"},
		{"pick": "0"},
		{"pick": "-3"},
		{"round": "2"},
		{"pick": map[string]interface{}{"irrelevant": "x"}},
	}
	for i, raw := range bad {
		if _, ok := Normalize(raw); ok {
			t.Errorf("Case %d: expected normalization to reject %v", i, raw)
		}
	}
}

func TestNormalizeTeamIDFallback(t *testing.T) {
	ev, ok := Normalize(map[string]interface{}{
		"pick":    "9",
		"team_id": map[string]interface{}{"#text": "4"},
	})
	if !ok {
		t.Fatal("Expected event to normalize")
	}
	if ev.TeamKey != "4" {
		t.Errorf("Expected team identifier 4, got %q", ev.TeamKey)
	}
}

func TestScalarEnvelopePriority(t *testing.T) {
	v := map[string]interface{}{"name": "low", "full": "mid", "#text": "high"}
	if got := Scalar(v); got != "high" {
		t.Errorf("Expected #text to win, got %q", got)
	}
	if got := Scalar(map[string]interface{}{"full": "mid", "name": "low"}); got != "mid" {
		t.Errorf("Expected full to beat name, got %q", got)
	}
	if got := Scalar(42); got != "42" {
		t.Errorf("Expected numeric passthrough, got %q", got)
	}
}
