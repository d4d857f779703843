package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestConfirmDialogLifecycle(t *testing.T) {
	d := NewConfirmDialog()
	if d.IsVisible() {
		t.Fatal("dialog starts hidden")
	}

	d.Show(DialogDeleteWidget, "w1", "Revenue")
	if !d.IsVisible() {
		t.Fatal("Show opens the dialog")
	}
	if d.GetType() != DialogDeleteWidget {
		t.Errorf("type = %v", d.GetType())
	}
	if d.GetWidgetID() != "w1" {
		t.Errorf("widget id = %q", d.GetWidgetID())
	}

	d.Hide()
	if d.IsVisible() {
		t.Error("Hide closes the dialog")
	}
}

func TestConfirmDialogView(t *testing.T) {
	d := NewConfirmDialog()
	d.SetSize(80, 24)
	d.Show(DialogDeleteWidget, "w1", "Revenue")

	view := ansi.Strip(d.View())
	if !strings.Contains(view, "Revenue") {
		t.Errorf("dialog should name the widget:\n%s", view)
	}
	if !strings.Contains(view, "y to confirm") {
		t.Errorf("dialog should explain the keys:\n%s", view)
	}
}
