package design

import "fmt"

// Units is the only unit system supported.
const Units = "mm"

// Design is the top-level result of evaluating a design script.
type Design struct {
	Panels    []*Panel                `json:"panels"` // definition order
	NameIndex map[string]PanelID      `json:"name_index"`
	Materials map[string]MaterialSpec `json:"materials,omitempty"`
	Units     string                  `json:"units"`
	Version   uint64                  `json:"version"`
}

// New creates an empty Design.
func New() *Design {
	return &Design{
		NameIndex: make(map[string]PanelID),
		Materials: make(map[string]MaterialSpec),
		Units:     Units,
	}
}

// AddPanel appends a panel. It does not check for duplicate names; see
// Validate.
func (d *Design) AddPanel(p *Panel) {
	if p.ID.IsZero() {
		p.ID = NewPanelID(p.Name)
	}
	d.Panels = append(d.Panels, p)
	if p.Name != "" {
		d.NameIndex[p.Name] = p.ID
	}
}

// AddMaterial registers a named material.
func (d *Design) AddMaterial(m MaterialSpec) {
	if m.Name != "" {
		d.Materials[m.Name] = m
	}
}

// Lookup returns the panel with the given name, or nil.
func (d *Design) Lookup(name string) *Panel {
	id, ok := d.NameIndex[name]
	if !ok {
		return nil
	}
	return d.Get(id)
}

// MustLookup returns the panel with the given name, or panics.
func (d *Design) MustLookup(name string) *Panel {
	p := d.Lookup(name)
	if p == nil {
		panic(fmt.Sprintf("design: no panel named %q", name))
	}
	return p
}

// Get returns the last panel added with the given ID, or nil.
func (d *Design) Get(id PanelID) *Panel {
	for i := len(d.Panels) - 1; i >= 0; i-- {
		if p := d.Panels[i]; p != nil && p.ID == id {
			return p
		}
	}
	return nil
}

// PanelCount returns the number of panels.
func (d *Design) PanelCount() int {
	return len(d.Panels)
}
