package export

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/draft"
)

const (
	// numbersChunkSize bounds the rows per osascript invocation; large
	// literal lists blow past AppleScript argument limits and Numbers
	// gets slower per row as the script grows.
	numbersChunkSize = 40
	// numbersTimeout caps one osascript round trip. Numbers can hang on
	// a modal dialog; better to fail the append than to block the loop
	// forever.
	numbersTimeout = 30 * time.Second
)

// NumbersExporter drives an Apple Numbers document through osascript. The
// document must already exist (created by opening the canonical .xlsx in
// Numbers once and saving it).
type NumbersExporter struct {
	path string
	run  func(ctx context.Context, script string) error
}

// NewNumbersExporter targets the .numbers document derived from the
// configured filename.
func NewNumbersExporter(path string) *NumbersExporter {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") {
		path = path[:len(path)-len(".xlsx")] + ".numbers"
	} else if !strings.HasSuffix(lower, ".numbers") {
		path += ".numbers"
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	return &NumbersExporter{path: path, run: runOsascript}
}

// Path returns the Numbers document location.
func (e *NumbersExporter) Path() string {
	return e.path
}

// AppendPicks adds rows to the Draft Results table, chunked so each
// osascript run stays small enough to finish inside the timeout.
func (e *NumbersExporter) AppendPicks(ctx context.Context, rows []draft.Row) error {
	if len(rows) == 0 {
		return nil
	}
	for start := 0; start < len(rows); start += numbersChunkSize {
		end := start + numbersChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]
		script := appendPicksScript(e.path, chunk)
		if err := e.run(ctx, script); err != nil {
			return fmt.Errorf("failed to append picks to Numbers (rows %d-%d): %w", start+1, end, err)
		}
		log.Debug().
			Int("rows", len(chunk)).
			Msg("Appended pick chunk to Numbers")
	}
	return nil
}

// Timestamp refreshes the last-updated stamp on the Draft Results table.
func (e *NumbersExporter) Timestamp(ctx context.Context) error {
	stamp := "Last updated: " + time.Now().Format("2006-01-02 15:04:05")
	script := setCellScript(e.path, SheetDraftResults, 9, 1, stamp)
	if err := e.run(ctx, script); err != nil {
		return fmt.Errorf("failed to set timestamp in Numbers: %w", err)
	}
	return nil
}

func runOsascript(ctx context.Context, script string) error {
	ctx, cancel := context.WithTimeout(ctx, numbersTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// appendPicksScript builds the AppleScript that opens the document, grows
// the Draft Results table and fills in the new rows. Kept pure so it can
// be tested off-macOS.
func appendPicksScript(path string, rows []draft.Row) string {
	var b strings.Builder
	b.WriteString("on run\n")
	fmt.Fprintf(&b, "    set documentsPath to POSIX file %s\n", appleScriptString(path))
	fmt.Fprintf(&b, "    set newRows to %s\n", rowsToAppleScript(rows))
	b.WriteString(`    tell application "Numbers"
        set doc to open documentsPath
        tell doc
            tell sheet "Draft Results"
                tell table 1
                    set currentRows to row count
                    set startRow to currentRows + 1
                    repeat (count of newRows) times
                        add row below last row
                    end repeat
                    set rowIndex to startRow
                    repeat with rowData in newRows
                        set colIndex to 1
                        repeat with cellValue in rowData
                            set value of cell colIndex of row rowIndex to cellValue
                            set colIndex to colIndex + 1
                        end repeat
                        set rowIndex to rowIndex + 1
                    end repeat
                end tell
            end tell
        end tell
        save doc
        close doc
    end tell
    return "OK"
end run`)
	return b.String()
}

// setCellScript writes a single cell of a sheet's first table.
func setCellScript(path, sheet string, column, row int, value string) string {
	var b strings.Builder
	b.WriteString("on run\n")
	fmt.Fprintf(&b, "    set documentsPath to POSIX file %s\n", appleScriptString(path))
	b.WriteString("    tell application \"Numbers\"\n")
	b.WriteString("        set doc to open documentsPath\n")
	b.WriteString("        tell doc\n")
	fmt.Fprintf(&b, "            tell sheet %s\n", appleScriptString(sheet))
	b.WriteString("                tell table 1\n")
	fmt.Fprintf(&b, "                    set value of cell %d of row %d to %s\n", column, row, appleScriptString(value))
	b.WriteString(`                end tell
            end tell
        end tell
        save doc
        close doc
    end tell
    return "OK"
end run`)
	return b.String()
}

// rowsToAppleScript renders rows as a literal AppleScript list of lists.
// Numbers treats the pick column as a number, everything else as text.
func rowsToAppleScript(rows []draft.Row) string {
	items := make([]string, len(rows))
	for i, row := range rows {
		cells := []string{
			appleScriptString(row.Round),
			strconv.Itoa(row.Pick),
			appleScriptString(row.Player),
			appleScriptString(row.TeamKey),
			appleScriptString(row.Manager),
		}
		items[i] = "{" + strings.Join(cells, ", ") + "}"
	}
	return "{" + strings.Join(items, ", ") + "}"
}

// appleScriptString quotes and escapes a Go string as an AppleScript
// string literal.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
