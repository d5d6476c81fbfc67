package export

import "testing"

func TestManagerLookupFormula(t *testing.T) {
	got := ManagerLookupFormula(7)
	want := `=IFERROR(VLOOKUP(D7,Teams!A:D,4,FALSE),"")`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestTotalFormula(t *testing.T) {
	labels := []string{"G", "A", "PIM"}
	values := map[string]float64{"G": 3, "A": 2, "PIM": 0.5}

	got := TotalFormula(2, labels, values)
	want := "=B2*3+C2*2+D2*0.5"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestTotalFormulaSkipsZeroModifiers(t *testing.T) {
	labels := []string{"G", "A", "SOG"}
	values := map[string]float64{"G": 3, "SOG": 0.1}

	got := TotalFormula(10, labels, values)
	want := "=B10*3+D10*0.1"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	if got := TotalFormula(2, []string{"G"}, map[string]float64{}); got != "" {
		t.Errorf("Expected empty formula with no modifiers, got %s", got)
	}
}

func TestDraftBoardFormulas(t *testing.T) {
	got := DraftedByFormula(2)
	want := `=IFERROR(VLOOKUP('Pre-Draft Analysis'!A2,'Draft Results'!C:D,2,FALSE),"")`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	if got := AnalysisRefFormula("B", 5); got != "='Pre-Draft Analysis'!B5" {
		t.Errorf("Unexpected analysis reference: %s", got)
	}
}

func TestProjectedPointsFormula(t *testing.T) {
	// 7 skater stats -> total in column I (index 9); 4 goalie stats ->
	// column F (index 6).
	got := ProjectedPointsFormula(3, 7, 4)
	want := `=IF('Pre-Draft Analysis'!D3="G",IFERROR(VLOOKUP('Pre-Draft Analysis'!B3,'Goalie Projections'!A:F,6,FALSE),""),IFERROR(VLOOKUP('Pre-Draft Analysis'!B3,'Skater Projections'!A:I,9,FALSE),""))`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
