package ui

import (
	"testing"

	"github.com/atomicstack/fleetpick/internal/option"
)

func paymentRegister() option.Dataset {
	return option.Dataset{
		Title: "Payment register",
		Fields: []option.Field{
			{ID: "vehicle", Label: "Vehicle", Kind: option.KindSelect, Required: true, Options: []option.Option{
				{Value: "1", Label: "ABC-123"},
				{Value: "2", Label: "XYZ-789"},
				{Value: "3", Label: "LMN-456"},
			}},
			{ID: "client", Label: "Client", Kind: option.KindSelect, Required: true, DependsOn: "vehicle", Options: []option.Option{
				{Value: "c1", Label: "Acme", Parent: "1"},
				{Value: "c2", Label: "Globex", Parent: "1"},
				{Value: "c3", Label: "Initech", Parent: "2"},
			}},
			{ID: "contract", Label: "Contract", Kind: option.KindSelect, DependsOn: "client", Options: []option.Option{
				{Value: "k1", Label: "K-100", Parent: "c1"},
				{Value: "k2", Label: "K-200", Parent: "c3"},
			}},
			{ID: "reference", Label: "Reference", Kind: option.KindText, Placeholder: "INV-…"},
		},
	}
}

func newTestModel(mutate ...func(*Options)) *Model {
	opts := Options{
		Dataset:     paymentRegister(),
		SourcePath:  "fleet.yaml",
		Width:       60,
		StaticCaret: true,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	return NewModel(opts)
}

func TestNewModelFocusesFirstEnabledField(t *testing.T) {
	m := newTestModel()
	if got := m.FocusedField(); got != "vehicle" {
		t.Fatalf("expected vehicle focused, got %q", got)
	}
	if !m.fields[0].sel.Focused() {
		t.Fatal("expected the vehicle control to hold focus")
	}
}

func TestNewModelHonoursFocusOption(t *testing.T) {
	m := newTestModel(func(o *Options) { o.Focus = "reference" })
	if got := m.FocusedField(); got != "reference" {
		t.Fatalf("expected reference focused, got %q", got)
	}
	if m.fields[0].sel.Focused() {
		t.Fatal("expected vehicle control to be blurred")
	}
}

func TestNewModelDropsDefaultsThatAreNotOffered(t *testing.T) {
	m := newTestModel(func(o *Options) {
		o.Dataset.Fields[0].Value = "2"
		o.Dataset.Fields[1].Value = "c1" // belongs to vehicle 1
		o.Dataset.Fields[3].Value = "INV-7"
	})
	values := m.Values()
	if values["vehicle"] != "2" {
		t.Fatalf("expected vehicle default kept, got %q", values["vehicle"])
	}
	if _, ok := values["client"]; ok {
		t.Fatalf("expected client default dropped, got %q", values["client"])
	}
	if values["reference"] != "INV-7" {
		t.Fatalf("expected text default kept, got %q", values["reference"])
	}
	if got := m.fields[3].input.Value(); got != "INV-7" {
		t.Fatalf("expected text input seeded, got %q", got)
	}
}

func TestSelectPropsNarrowDependentOptions(t *testing.T) {
	m := newTestModel()
	client := m.fields[1]
	p := m.selectProps(client)
	if !p.Disabled || p.Placeholder != "Select a vehicle first" {
		t.Fatalf("expected client disabled until vehicle chosen, got %+v", p)
	}

	m.applyChange("vehicle", "1")
	p = m.selectProps(client)
	if p.Disabled {
		t.Fatal("expected client enabled once vehicle is chosen")
	}
	if len(p.Options) != 2 || p.Options[0].Label != "Acme" || p.Options[1].Label != "Globex" {
		t.Fatalf("expected vehicle 1 clients, got %#v", p.Options)
	}
	if p.Label != "Client *" {
		t.Fatalf("expected required marker in label, got %q", p.Label)
	}
}

func TestApplyChangeResetsDependentsTransitively(t *testing.T) {
	m := newTestModel()
	m.applyChange("vehicle", "1")
	m.applyChange("client", "c1")
	m.applyChange("contract", "k1")

	m.applyChange("vehicle", "2")
	values := m.Values()
	if values["vehicle"] != "2" {
		t.Fatalf("expected vehicle 2, got %q", values["vehicle"])
	}
	if values["client"] != "" || values["contract"] != "" {
		t.Fatalf("expected dependents reset, got %v", values)
	}
}

func TestApplyChangeSameValueIsQuiet(t *testing.T) {
	m := newTestModel()
	m.applyChange("vehicle", "1")
	m.applyChange("client", "c1")
	m.applyChange("vehicle", "1")
	if m.Values()["client"] != "c1" {
		t.Fatal("re-selecting the same vehicle must keep the client")
	}
}
