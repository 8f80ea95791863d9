package state

import (
	"math/rand"
	"testing"
)

func TestMoveHighlightClampsWithoutWrapping(t *testing.T) {
	c := openControl()
	if !c.MoveHighlightDown(3) || !c.MoveHighlightDown(3) {
		t.Fatal("expected two downward moves")
	}
	if c.Highlight != 2 {
		t.Fatalf("expected highlight 2, got %d", c.Highlight)
	}
	if c.MoveHighlightDown(3) {
		t.Fatal("expected no movement past the last row")
	}
	if c.Highlight != 2 {
		t.Fatalf("expected highlight to stay at 2, got %d", c.Highlight)
	}

	c.Highlight = 0
	if c.MoveHighlightUp(3) {
		t.Fatal("expected no movement above the first row")
	}
	if c.Highlight != 0 {
		t.Fatalf("expected highlight 0, got %d", c.Highlight)
	}
}

func TestMoveHighlightNoopOnEmptyList(t *testing.T) {
	c := openControl()
	if c.MoveHighlightDown(0) || c.MoveHighlightUp(0) || c.MoveHighlightEnd(0) || c.MoveHighlightPageDown(0, 5) {
		t.Fatal("expected navigation to be a no-op with no rows")
	}
	if c.Highlight != 0 {
		t.Fatalf("expected highlight 0, got %d", c.Highlight)
	}
}

func TestMoveHighlightIgnoredWhileClosed(t *testing.T) {
	c := NewControl()
	if c.MoveHighlightDown(5) {
		t.Fatal("expected closed control to ignore navigation")
	}
}

func TestHighlightStaysInRangeForRandomWalks(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 200; run++ {
		n := rng.Intn(12)
		c := openControl()
		for step := 0; step < 60; step++ {
			switch rng.Intn(6) {
			case 0, 1:
				c.MoveHighlightDown(n)
			case 2, 3:
				c.MoveHighlightUp(n)
			case 4:
				c.MoveHighlightPageDown(n, 3)
			default:
				c.MoveHighlightPageUp(n, 3)
			}
			if n == 0 && c.Highlight != 0 {
				t.Fatalf("expected highlight 0 on empty list, got %d", c.Highlight)
			}
			if n > 0 && (c.Highlight < 0 || c.Highlight > n-1) {
				t.Fatalf("highlight %d escaped [0,%d]", c.Highlight, n-1)
			}
		}
	}
}

func TestMoveHighlightHomeEnd(t *testing.T) {
	c := openControl()
	if !c.MoveHighlightEnd(4) || c.Highlight != 3 {
		t.Fatalf("expected highlight 3, got %d", c.Highlight)
	}
	if c.MoveHighlightEnd(4) {
		t.Fatal("expected no movement when already at end")
	}
	if !c.MoveHighlightHome(4) || c.Highlight != 0 {
		t.Fatalf("expected highlight 0, got %d", c.Highlight)
	}
}

func TestMoveHighlightPaging(t *testing.T) {
	c := openControl()
	if !c.MoveHighlightPageDown(5, 2) {
		t.Fatal("expected movement on first page down")
	}
	if c.Highlight != 2 {
		t.Fatalf("expected highlight 2, got %d", c.Highlight)
	}
	c.MoveHighlightPageDown(5, 2)
	if c.Highlight != 4 {
		t.Fatalf("expected highlight 4, got %d", c.Highlight)
	}
	if c.MoveHighlightPageDown(5, 2) {
		t.Fatal("expected no further movement past end")
	}
	if !c.MoveHighlightPageUp(5, 10) || c.Highlight != 0 {
		t.Fatalf("expected highlight back at start, got %d", c.Highlight)
	}
}

func TestClampHighlight(t *testing.T) {
	c := openControl()
	c.Highlight = 9
	if !c.ClampHighlight(4) || c.Highlight != 3 {
		t.Fatalf("expected clamp to 3, got %d", c.Highlight)
	}
	if !c.ClampHighlight(0) || c.Highlight != 0 {
		t.Fatalf("expected clamp to 0 for empty list, got %d", c.Highlight)
	}
}

func TestEnsureHighlightVisibleUsesNearestScroll(t *testing.T) {
	c := openControl()
	c.Highlight = 4
	c.EnsureHighlightVisible(5, 2)
	if c.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", c.ViewportOffset)
	}

	// Already visible: no scroll.
	c.Highlight = 3
	c.EnsureHighlightVisible(5, 2)
	if c.ViewportOffset != 3 {
		t.Fatalf("expected offset unchanged, got %d", c.ViewportOffset)
	}

	c.Highlight = 1
	c.EnsureHighlightVisible(5, 3)
	if c.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with highlight, got %d", c.ViewportOffset)
	}

	c.ViewportOffset = 4
	c.EnsureHighlightVisible(5, 0)
	if c.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", c.ViewportOffset)
	}

	c.Highlight = 8
	c.ViewportOffset = 6
	c.EnsureHighlightVisible(3, 8)
	if c.Highlight != 2 || c.ViewportOffset != 0 {
		t.Fatalf("expected shrunken list to clamp highlight and offset, got %d/%d", c.Highlight, c.ViewportOffset)
	}
}

func TestScrollByLeavesHighlight(t *testing.T) {
	c := openControl()
	c.Highlight = 1
	if !c.ScrollBy(10, 4, 3) {
		t.Fatal("expected scroll")
	}
	if c.ViewportOffset != 3 || c.Highlight != 1 {
		t.Fatalf("expected offset 3 highlight 1, got %d/%d", c.ViewportOffset, c.Highlight)
	}
	c.ScrollBy(10, 4, 100)
	if c.ViewportOffset != 6 {
		t.Fatalf("expected offset clamped to 6, got %d", c.ViewportOffset)
	}
	c.ViewportOffset = 0
	if c.ScrollBy(3, 4, 1) {
		t.Fatal("expected no scroll when everything fits")
	}
	c.ViewportOffset = 6
	if got := c.VisibleStart(8, 4); got != 4 {
		t.Fatalf("expected visible start clamped to 4, got %d", got)
	}
}
