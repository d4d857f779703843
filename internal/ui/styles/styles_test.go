package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dark") })

	SetTheme("light")
	if ColorAccent != lipgloss.Color("25") {
		t.Errorf("light accent = %v, want 25", ColorAccent)
	}
	if got := CellTitleStyle.GetForeground(); got != lipgloss.Color("25") {
		t.Errorf("derived style not rebuilt: foreground = %v", got)
	}

	SetTheme("dark")
	if ColorAccent != lipgloss.Color("6") {
		t.Errorf("dark accent = %v, want 6", ColorAccent)
	}

	SetTheme("neon")
	if ColorAccent != lipgloss.Color("6") {
		t.Errorf("unknown theme should fall back to dark, accent = %v", ColorAccent)
	}
}
