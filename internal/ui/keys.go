package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard bindings for the application
type KeyMap struct {
	// Shell
	Quit        key.Binding
	Help        key.Binding
	CloseDialog key.Binding
	Save        key.Binding
	Undo        key.Binding
	Redo        key.Binding

	// Selection
	NextWidget key.Binding
	PrevWidget key.Binding
	Deselect   key.Binding

	// Widget actions
	Delete     key.Binding
	Duplicate  key.Binding
	ToggleLock key.Binding
	ToggleHide key.Binding
	Palette    key.Binding
	Menu       key.Binding

	// Placement
	MoveUp       key.Binding
	MoveDown     key.Binding
	MoveLeft     key.Binding
	MoveRight    key.Binding
	GrowWidth    key.Binding
	ShrinkWidth  key.Binding
	GrowHeight   key.Binding
	ShrinkHeight key.Binding

	// View
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ZoomReset key.Binding

	// Export
	CopySpec     key.Binding
	Snapshot     key.Binding
	SnapshotANSI key.Binding
	ExportData   key.Binding
	ExportXLSX   key.Binding
	ExportSpec   key.Binding
}

// DefaultKeyMap returns the default keyboard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Shell
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CloseDialog: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save dashboard"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "redo"),
		),

		// Selection
		NextWidget: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next widget"),
		),
		PrevWidget: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous widget"),
		),
		Deselect: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "deselect"),
		),

		// Widget actions
		Delete: key.NewBinding(
			key.WithKeys("delete", "x"),
			key.WithHelp("del", "delete widget"),
		),
		Duplicate: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "duplicate"),
		),
		ToggleLock: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "lock/unlock"),
		),
		ToggleHide: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "show/hide"),
		),
		Palette: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "add widget"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "widget menu"),
		),

		// Placement
		MoveUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move down"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "move left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "move right"),
		),
		GrowWidth: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "wider"),
		),
		ShrinkWidth: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "narrower"),
		),
		GrowHeight: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "taller"),
		),
		ShrinkHeight: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "shorter"),
		),

		// View
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		ZoomReset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset zoom"),
		),

		// Export
		CopySpec: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy spec"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snapshot"),
		),
		SnapshotANSI: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "ansi snapshot"),
		),
		ExportData: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		ExportXLSX: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export xlsx"),
		),
		ExportSpec: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "export spec json"),
		),
	}
}
