package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title                 *lipgloss.Style
	Label                 *lipgloss.Style
	LabelFocused          *lipgloss.Style
	Required              *lipgloss.Style
	Trigger               *lipgloss.Style
	TriggerFocused        *lipgloss.Style
	TriggerOpen           *lipgloss.Style
	TriggerError          *lipgloss.Style
	Placeholder           *lipgloss.Style
	Disabled              *lipgloss.Style
	ClearGlyph            *lipgloss.Style
	Chevron               *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	CurrentItem           *lipgloss.Style
	Check                 *lipgloss.Style
	Empty                 *lipgloss.Style
	Count                 *lipgloss.Style
	Error                 *lipgloss.Style
	FieldError            *lipgloss.Style
	Info                  *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	LabelFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Required: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	),
	Trigger: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	),
	TriggerFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
	),
	TriggerOpen: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("24")),
	),
	TriggerError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52")),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Background(lipgloss.Color("236")),
	),
	Disabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("235")).Faint(true),
	),
	ClearGlyph: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	),
	Chevron: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	CurrentItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	),
	Check: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
	),
	Count: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	FieldError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Plain returns a style set with every entry unset. Views fall back to
// unstyled text, which keeps rendered output stable in tests.
func Plain() *Styles {
	return &Styles{}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
