package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"Vehicle", "ABC-123"},
		{"Client", "Acme"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"Vehicle  ABC-123",
		"Client      Acme",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	got := Format([][]string{{"東京", "x"}, {"ab", "y"}}, nil)
	if got[0] != "東京  x" || got[1] != "ab    y" {
		t.Fatalf("expected display-width padding, got %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatal("expected nil for no rows")
	}
}
