package design

import "testing"

func TestNewPanelIDStable(t *testing.T) {
	a := NewPanelID("front")
	b := NewPanelID("front")
	if a != b {
		t.Fatalf("IDs differ: %s vs %s", a, b)
	}
	if a == NewPanelID("back") {
		t.Fatal("different names must hash differently")
	}
	if len(a.Short()) != 8 {
		t.Errorf("Short() = %q, want 8 chars", a.Short())
	}
	if ZeroID.Short() != "" || !ZeroID.IsZero() {
		t.Error("zero ID should be empty")
	}
}

func TestAddPanelAndLookup(t *testing.T) {
	d := New()
	p := teethPanel("front", 100, 60)
	d.AddPanel(p)

	if p.ID != NewPanelID("front") {
		t.Errorf("AddPanel should assign a content ID, got %q", p.ID)
	}
	if d.PanelCount() != 1 {
		t.Errorf("PanelCount() = %d, want 1", d.PanelCount())
	}
	if got := d.Lookup("front"); got != p {
		t.Errorf("Lookup returned %v", got)
	}
	if d.Lookup("missing") != nil {
		t.Error("Lookup of missing name should be nil")
	}
	if d.Units != "mm" {
		t.Errorf("Units = %q", d.Units)
	}
}

func TestMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New().MustLookup("ghost")
}

func TestAddMaterial(t *testing.T) {
	d := New()
	d.AddMaterial(MaterialSpec{Name: "acrylic", Thickness: 3})
	d.AddMaterial(MaterialSpec{Thickness: 9})
	if len(d.Materials) != 1 {
		t.Fatalf("expected 1 named material, got %d", len(d.Materials))
	}
	if d.Materials["acrylic"].Thickness != 3 {
		t.Error("material not stored")
	}
}
