// Package components holds the reusable view pieces of the dashboard
// shell: dialogs, menus, pickers, and the status bar.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"

	"github.com/mosaicboard/mosaic/internal/ui/styles"
)

// DialogType represents the type of confirmation dialog.
type DialogType int

const (
	DialogDeleteWidget DialogType = iota
	DialogDiscardChanges
)

// ConfirmDialog represents a confirmation dialog for destructive actions.
type ConfirmDialog struct {
	width      int
	height     int
	dialogType DialogType
	widgetID   string
	title      string
	visible    bool
}

// NewConfirmDialog creates a new confirmation dialog.
func NewConfirmDialog() *ConfirmDialog {
	return &ConfirmDialog{}
}

// Show displays the dialog with the given parameters.
func (d *ConfirmDialog) Show(dialogType DialogType, widgetID, title string) {
	d.dialogType = dialogType
	d.widgetID = widgetID
	d.title = title
	d.visible = true
}

// Hide hides the dialog.
func (d *ConfirmDialog) Hide() {
	d.visible = false
}

// IsVisible returns whether the dialog is visible.
func (d *ConfirmDialog) IsVisible() bool {
	return d.visible
}

// GetType returns the dialog type.
func (d *ConfirmDialog) GetType() DialogType {
	return d.dialogType
}

// GetWidgetID returns the widget being acted upon.
func (d *ConfirmDialog) GetWidgetID() string {
	return d.widgetID
}

// SetSize sets the dialog dimensions.
func (d *ConfirmDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the confirmation dialog.
func (d *ConfirmDialog) View() string {
	if !d.visible {
		return ""
	}

	var title, warning string
	if d.dialogType == DialogDeleteWidget {
		title = "Delete Widget"
		warning = "This will remove the widget and its configuration."
	} else {
		title = "Discard Changes"
		warning = "Unsaved dashboard changes will be lost."
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.ColorDanger).
		MarginBottom(1)

	name := d.title
	if len(name) > 40 {
		name = name[:37] + "..."
	}
	if name == "" {
		name = "(untitled)"
	}

	details := fmt.Sprintf("Widget: %s", name)
	prompt := "Press y to confirm, n or esc to cancel"

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		wordwrap.WrapString(warning, 44),
		"",
		details,
		"",
		styles.FaintStyle.Render(prompt),
	)

	dialog := styles.DialogStyle.Render(content)

	return lipgloss.Place(d.width, d.height,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}
