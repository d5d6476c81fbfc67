package export

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/draft"
)

// SheetsExporter mirrors picks into a Google Sheets spreadsheet. Values go
// in as USER_ENTERED so the manager lookup formulas evaluate.
type SheetsExporter struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsExporter builds a Sheets-backed sink from a service account
// credentials file. The target spreadsheet needs a "Draft Results" tab and
// a "Teams" tab for the manager lookup to resolve.
func NewSheetsExporter(ctx context.Context, credentialsFile, spreadsheetID string) (*SheetsExporter, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsExporter{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// AppendPicks appends rows after the Draft Results table, with the manager
// column as a lookup formula against the Teams tab.
func (e *SheetsExporter) AppendPicks(ctx context.Context, rows []draft.Row) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		// The append API places rows after the current table, so the row
		// number is unknown here; INDIRECT pins the formula to wherever
		// the row lands.
		manager := `=IFERROR(VLOOKUP(INDIRECT("D"&ROW()),Teams!A:D,4,FALSE),"")`
		values[i] = []interface{}{row.Round, row.Pick, row.Player, row.TeamKey, manager}
	}

	valueRange := &sheets.ValueRange{Values: values}
	_, err := e.service.Spreadsheets.Values.Append(e.spreadsheetID, SheetDraftResults+"!A1", valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append rows: %w", err)
	}

	log.Debug().
		Int("rows", len(rows)).
		Str("spreadsheet_id", e.spreadsheetID).
		Msg("Appended picks to Google Sheets")
	return nil
}

// Timestamp refreshes the last-updated stamp on the Draft Results tab.
func (e *SheetsExporter) Timestamp(ctx context.Context) error {
	stamp := "Last updated: " + time.Now().Format("2006-01-02 15:04:05")
	valueRange := &sheets.ValueRange{Values: [][]interface{}{{stamp}}}

	_, err := e.service.Spreadsheets.Values.Update(e.spreadsheetID, SheetDraftResults+"!"+timestampCell, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update timestamp: %w", err)
	}
	return nil
}
