package dashboard

import (
	"strings"
	"testing"
)

func TestNewWidgetDefaults(t *testing.T) {
	w := NewWidget("bar", "Revenue")
	if w.ID == "" {
		t.Fatal("widget must get a generated id")
	}
	if !w.Visible {
		t.Error("new widgets start visible")
	}
	if w.Locked {
		t.Error("new widgets start unlocked")
	}
}

func TestNewWidgetUniqueIDs(t *testing.T) {
	a := NewWidget("bar", "A")
	b := NewWidget("bar", "B")
	if a.ID == b.ID {
		t.Error("widget ids must be unique")
	}
}

func TestPatchApplyPartial(t *testing.T) {
	w := NewWidget("bar", "Old")
	title := "New"
	locked := true

	got := Patch{Title: &title, Locked: &locked}.Apply(w)
	if got.Title != "New" {
		t.Errorf("title should update, got %q", got.Title)
	}
	if !got.Locked {
		t.Error("locked should update")
	}
	if !got.Visible {
		t.Error("untouched fields must survive the patch")
	}
	if w.Title != "Old" {
		t.Error("Apply must not mutate the input widget")
	}
}

func TestParseDropPayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid minimal", `{"type":"bar"}`, false},
		{"valid full", `{"type":"line","title":"CPU","config":{"smooth":true}}`, false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"malformed json", `{"type":`, true},
		{"missing type", `{"title":"x"}`, true},
		{"blank type", `{"type":"  ","title":""}`, true},
		{"unknown type accepted", `{"type":"hologram"}`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDropPayload(tc.raw)
			if (err != nil) != tc.wantErr {
				t.Errorf("ParseDropPayload(%q) error = %v, wantErr %v", tc.raw, err, tc.wantErr)
			}
		})
	}
}

func TestParseDropPayloadTrimsType(t *testing.T) {
	p, err := ParseDropPayload(`{"type":" bar "}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Type != "bar" {
		t.Errorf("type = %q, want bar", p.Type)
	}
	if w := p.Widget(); w.Title == "" {
		t.Error("materialized widget should get a default title")
	}
}

func TestDropPayloadWidget(t *testing.T) {
	p, err := ParseDropPayload(`{"type":"pie","title":"Sales","config":{"legendVisible":false}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := p.Widget()
	if string(w.Kind) != "pie" {
		t.Errorf("kind = %q, want pie", w.Kind)
	}
	if w.Title != "Sales" {
		t.Errorf("title = %q, want Sales", w.Title)
	}
	v, ok := w.Style["legendVisible"]
	if !ok {
		t.Fatal("payload config should carry into widget style")
	}
	if v != false {
		t.Errorf("legendVisible = %v, want false", v)
	}
}

func TestDropPayloadWidgetDefaultTitle(t *testing.T) {
	p, err := ParseDropPayload(`{"type":"gauge"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := p.Widget()
	if !strings.Contains(w.Title, "auge") {
		t.Errorf("default title should mention the kind, got %q", w.Title)
	}
}
