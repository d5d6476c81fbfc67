// Package export writes draft data to spreadsheet backends: a canonical
// Excel workbook, Apple Numbers via AppleScript, or Google Sheets.
package export

import (
	"context"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/draft"
)

// Sink receives finalized draft rows. Appends are not idempotent; callers
// own deduplication.
type Sink interface {
	AppendPicks(ctx context.Context, rows []draft.Row) error
	Timestamp(ctx context.Context) error
}

// SheetDef is one workbook sheet with its header row.
type SheetDef struct {
	Name    string
	Headers []string
}

// Sheet names shared across backends.
const (
	SheetDraftBoard     = "Draft Board"
	SheetLeagueSettings = "League Settings"
	SheetTeams          = "Teams"
	SheetDraftResults   = "Draft Results"
	SheetDraftAnalysis  = "Pre-Draft Analysis"

	SheetSkaterProjections = "Skater Projections"
	SheetGoalieProjections = "Goalie Projections"
)

// BaseSheets defines the canonical workbook layout. Order matters: it is
// the sheet order users see.
var BaseSheets = []SheetDef{
	{SheetDraftBoard, []string{"draftedBy", "playerName", "team", "position", "averagePick", "projectedPoints"}},
	{SheetLeagueSettings, []string{"setting", "value"}},
	{SheetTeams, []string{"teamKey", "teamId", "teamName", "manager"}},
	{SheetDraftResults, []string{"round", "pick", "playerName", "teamId", "manager"}},
	{SheetDraftAnalysis, []string{
		"playerKey", "playerName", "team", "position", "averagePick", "averageRound", "percentDrafted",
		"projectedAuctionValue", "averageAuctionCost", "seasonRank", "positionRank", "preseasonAveragePick",
		"preseasonPercentDrafted",
	}},
}

// timestampCell is where the last-updated stamp lives on Draft Results.
const timestampCell = "I1"
