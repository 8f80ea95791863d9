package ui

import "testing"

func TestTypingIntoTextFieldStoresValue(t *testing.T) {
	h := NewHarness(newTestModel(func(o *Options) { o.Focus = "reference" }))
	h.Type("INV-42")
	if got := h.Model().Values()["reference"]; got != "INV-42" {
		t.Fatalf("expected reference stored, got %q", got)
	}
	h.Key("backspace")
	if got := h.Model().Values()["reference"]; got != "INV-4" {
		t.Fatalf("expected backspace to edit value, got %q", got)
	}
	h.Key("ctrl+u")
	if got := h.Model().Values()["reference"]; got != "" {
		t.Fatalf("expected ctrl+u to clear value, got %q", got)
	}
	if got := h.Model().fields[3].input.Value(); got != "" {
		t.Fatalf("expected input cleared, got %q", got)
	}
}

func TestTextFieldIgnoresKeysWithoutFocus(t *testing.T) {
	h := NewHarness(newTestModel())
	h.Type("abc")
	if got := h.Model().Values()["reference"]; got != "" {
		t.Fatalf("expected unfocused text field untouched, got %q", got)
	}
	if h.Model().fields[0].sel.IsOpen() {
		t.Fatal("typing on a closed control must not open it")
	}
}
