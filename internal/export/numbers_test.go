package export

import (
	"context"
	"strings"
	"testing"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/draft"
)

func TestNewNumbersExporterNormalizesPath(t *testing.T) {
	tests := []struct{ in, wantSuffix string }{
		{"fantasy_draft_data.xlsx", "fantasy_draft_data.numbers"},
		{"fantasy_draft_data.numbers", "fantasy_draft_data.numbers"},
		{"fantasy_draft_data", "fantasy_draft_data.numbers"},
	}
	for _, tt := range tests {
		e := NewNumbersExporter(tt.in)
		if !strings.HasSuffix(e.Path(), tt.wantSuffix) {
			t.Errorf("NewNumbersExporter(%q).Path() = %q, want suffix %q", tt.in, e.Path(), tt.wantSuffix)
		}
	}
}

func TestRowsToAppleScript(t *testing.T) {
	rows := []draft.Row{
		{Round: "1", Pick: 1, Player: `Joe "Smokin" Thornton`, TeamKey: "t1"},
	}
	got := rowsToAppleScript(rows)
	want := `{{"1", 1, "Joe \"Smokin\" Thornton", "t1", ""}}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestAppendPicksScriptShape(t *testing.T) {
	script := appendPicksScript("/tmp/draft.numbers", []draft.Row{
		{Round: "1", Pick: 1, Player: "Connor McDavid", TeamKey: "t1"},
	})

	for _, want := range []string{
		`POSIX file "/tmp/draft.numbers"`,
		`tell application "Numbers"`,
		`tell sheet "Draft Results"`,
		"add row below last row",
		`{"1", 1, "Connor McDavid", "t1", ""}`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("Expected script to contain %q:\n%s", want, script)
		}
	}
}

func TestAppendPicksChunks(t *testing.T) {
	rows := make([]draft.Row, numbersChunkSize*2+5)
	for i := range rows {
		rows[i] = draft.Row{Round: "1", Pick: i + 1, Player: "p", TeamKey: "t"}
	}

	var scripts []string
	e := NewNumbersExporter("draft.numbers")
	e.run = func(ctx context.Context, script string) error {
		scripts = append(scripts, script)
		return nil
	}

	if err := e.AppendPicks(context.Background(), rows); err != nil {
		t.Fatalf("Expected append to succeed, got %v", err)
	}
	if len(scripts) != 3 {
		t.Errorf("Expected 3 osascript invocations for %d rows, got %d", len(rows), len(scripts))
	}
}

func TestAppleScriptStringEscaping(t *testing.T) {
	got := appleScriptString(`a "b" \ c`)
	want := `"a \"b\" \\ c"`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
