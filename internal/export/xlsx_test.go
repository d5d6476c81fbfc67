package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/draft"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/yahoo"
)

func newTestWorkbook(t *testing.T) *XlsxExporter {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.xlsx")
	e, err := NewXlsxExporter(path)
	if err != nil {
		t.Fatalf("Expected workbook to be created, got %v", err)
	}
	return e
}

func TestCanonicalXlsxName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"fantasy_draft_data.xlsx", "fantasy_draft_data.xlsx"},
		{"fantasy_draft_data.numbers", "fantasy_draft_data.xlsx"},
		{"fantasy_draft_data", "fantasy_draft_data.xlsx"},
		{".numbers", "fantasy_draft_data.xlsx"},
	}
	for _, tt := range tests {
		if got := CanonicalXlsxName(tt.in); got != tt.want {
			t.Errorf("CanonicalXlsxName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewXlsxExporterCreatesBaseSheets(t *testing.T) {
	e := newTestWorkbook(t)

	f, err := excelize.OpenFile(e.Path())
	if err != nil {
		t.Fatalf("Expected to reopen workbook, got %v", err)
	}
	defer f.Close()

	for _, sheet := range BaseSheets {
		idx, _ := f.GetSheetIndex(sheet.Name)
		if idx < 0 {
			t.Errorf("Expected sheet %q to exist", sheet.Name)
			continue
		}
		header, err := f.GetCellValue(sheet.Name, "A1")
		if err != nil || header != sheet.Headers[0] {
			t.Errorf("Sheet %q: expected header %q, got %q (%v)", sheet.Name, sheet.Headers[0], header, err)
		}
	}
	if idx, _ := f.GetSheetIndex("Sheet1"); idx >= 0 {
		t.Error("Expected default Sheet1 to be removed")
	}
}

func TestAppendPicksAndTimestamp(t *testing.T) {
	e := newTestWorkbook(t)
	ctx := context.Background()

	rows := []draft.Row{
		{Round: "1", Pick: 1, Player: "Connor McDavid", TeamKey: "461.l.1.t.1"},
		{Round: "1", Pick: 2, Player: "Nathan MacKinnon", TeamKey: "461.l.1.t.2"},
	}
	if err := e.AppendPicks(ctx, rows); err != nil {
		t.Fatalf("Expected append to succeed, got %v", err)
	}
	if err := e.AppendPicks(ctx, []draft.Row{{Round: "1", Pick: 3, Player: "Cale Makar", TeamKey: "461.l.1.t.3", Manager: "carol"}}); err != nil {
		t.Fatalf("Expected second append to succeed, got %v", err)
	}
	if err := e.Timestamp(ctx); err != nil {
		t.Fatalf("Expected timestamp to succeed, got %v", err)
	}

	f, err := excelize.OpenFile(e.Path())
	if err != nil {
		t.Fatalf("Expected to reopen workbook, got %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(SheetDraftResults)
	if err != nil {
		t.Fatalf("Expected to read rows, got %v", err)
	}
	// Header + 3 appended picks.
	if len(got) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(got))
	}
	if got[1][2] != "Connor McDavid" || got[3][2] != "Cale Makar" {
		t.Errorf("Unexpected player cells: %v", got)
	}

	formula, err := f.GetCellFormula(SheetDraftResults, "E2")
	if err != nil || formula != ManagerLookupFormula(2) {
		t.Errorf("Expected manager lookup formula in E2, got %q (%v)", formula, err)
	}
	manager, _ := f.GetCellValue(SheetDraftResults, "E4")
	if manager != "carol" {
		t.Errorf("Expected explicit manager preserved, got %q", manager)
	}

	stamp, _ := f.GetCellValue(SheetDraftResults, timestampCell)
	if len(stamp) == 0 {
		t.Error("Expected timestamp cell to be set")
	}
}

func TestUpdateTeamsRewrites(t *testing.T) {
	e := newTestWorkbook(t)

	first := []yahoo.Team{
		{TeamKey: "k1", TeamID: "1", Name: "Puck Hogs", Manager: "alice"},
		{TeamKey: "k2", TeamID: "2", Name: "Ice Holes", Manager: "bob"},
	}
	if err := e.UpdateTeams(first); err != nil {
		t.Fatalf("Expected teams update to succeed, got %v", err)
	}
	// A second update must replace, not append.
	second := []yahoo.Team{{TeamKey: "k3", TeamID: "3", Name: "Benders", Manager: "carol"}}
	if err := e.UpdateTeams(second); err != nil {
		t.Fatalf("Expected second teams update to succeed, got %v", err)
	}

	f, err := excelize.OpenFile(e.Path())
	if err != nil {
		t.Fatalf("Expected to reopen workbook, got %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(SheetTeams)
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 team, got %d rows", len(rows))
	}
	if rows[1][3] != "carol" {
		t.Errorf("Expected manager carol, got %v", rows[1])
	}
}

func testLeagueSettings() *yahoo.LeagueSettings {
	return &yahoo.LeagueSettings{
		LeagueName:  "Test League",
		DraftType:   "live",
		ScoringType: "point",
		MaxTeams:    "12",
		RosterPositions: []yahoo.RosterPosition{
			{Position: "C", Count: "2"},
			{Position: "G", Count: "2"},
		},
		StatCategories: []yahoo.StatCategory{
			{StatID: "1", Name: "Goals", DisplayName: "G", PositionType: "P", Value: "3"},
			{StatID: "2", Name: "Assists", DisplayName: "A", PositionType: "P", Value: "2"},
			{StatID: "19", Name: "Wins", DisplayName: "W", PositionType: "G", Value: "4"},
		},
	}
}

func TestUpdateLeagueSettingsSections(t *testing.T) {
	e := newTestWorkbook(t)
	if err := e.UpdateLeagueSettings(testLeagueSettings()); err != nil {
		t.Fatalf("Expected settings update to succeed, got %v", err)
	}

	f, err := excelize.OpenFile(e.Path())
	if err != nil {
		t.Fatalf("Expected to reopen workbook, got %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(SheetLeagueSettings)
	var flat []string
	for _, row := range rows {
		if len(row) > 0 {
			flat = append(flat, row[0])
		} else {
			flat = append(flat, "")
		}
	}
	for _, want := range []string{"League Name", "ROSTER POSITIONS", "SKATER STATS", "GOALIE STATS"} {
		found := false
		for _, got := range flat {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected section %q in settings sheet, got %v", want, flat)
		}
	}
}

func TestSetupProjectionSheets(t *testing.T) {
	e := newTestWorkbook(t)
	if err := e.SetupProjectionSheets(testLeagueSettings()); err != nil {
		t.Fatalf("Expected projection setup to succeed, got %v", err)
	}

	f, err := excelize.OpenFile(e.Path())
	if err != nil {
		t.Fatalf("Expected to reopen workbook, got %v", err)
	}
	defer f.Close()

	// Skaters: playerName + G + A + TOTAL in column D.
	header, _ := f.GetCellValue(SheetSkaterProjections, "D1")
	if header != "TOTAL" {
		t.Errorf("Expected TOTAL header in D1, got %q", header)
	}
	formula, err := f.GetCellFormula(SheetSkaterProjections, "D2")
	if err != nil || formula != "=B2*3+C2*2" {
		t.Errorf("Expected skater TOTAL formula, got %q (%v)", formula, err)
	}

	// Goalies: playerName + W + TOTAL in column C.
	formula, err = f.GetCellFormula(SheetGoalieProjections, "C2")
	if err != nil || formula != "=B2*4" {
		t.Errorf("Expected goalie TOTAL formula, got %q (%v)", formula, err)
	}
}

func TestCreateDraftBoard(t *testing.T) {
	e := newTestWorkbook(t)
	players := []yahoo.PlayerAnalysis{
		{PlayerKey: "461.p.1", FullName: "Connor McDavid", EditorialTeam: "EDM", DisplayPosition: "C", AveragePick: "1.1"},
		{PlayerKey: "461.p.2", FullName: "Igor Shesterkin", EditorialTeam: "NYR", DisplayPosition: "G", AveragePick: "25.0"},
	}
	if err := e.UpdateDraftAnalysis(players); err != nil {
		t.Fatalf("Expected analysis update to succeed, got %v", err)
	}
	if err := e.CreateDraftBoard(testLeagueSettings()); err != nil {
		t.Fatalf("Expected draft board creation to succeed, got %v", err)
	}

	f, err := excelize.OpenFile(e.Path())
	if err != nil {
		t.Fatalf("Expected to reopen workbook, got %v", err)
	}
	defer f.Close()

	formula, err := f.GetCellFormula(SheetDraftBoard, "A2")
	if err != nil || formula != DraftedByFormula(2) {
		t.Errorf("Expected draftedBy formula in A2, got %q (%v)", formula, err)
	}
	formula, _ = f.GetCellFormula(SheetDraftBoard, "B3")
	if formula != "='Pre-Draft Analysis'!B3" {
		t.Errorf("Expected analysis reference in B3, got %q", formula)
	}
	formula, _ = f.GetCellFormula(SheetDraftBoard, "F2")
	if formula == "" {
		t.Error("Expected projected points formula in F2")
	}
}
