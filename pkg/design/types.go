package design

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/chazu/lasercut/pkg/joint"
)

// PanelID is a content-addressed identifier derived from the panel name.
type PanelID string

// ZeroID is the empty PanelID.
const ZeroID PanelID = ""

// NewPanelID hashes a panel name into a stable identifier.
func NewPanelID(name string) PanelID {
	sum := sha256.Sum256([]byte("panel/" + name))
	return PanelID(hex.EncodeToString(sum[:]))
}

// Short returns the first 8 hex characters, for log and error messages.
func (id PanelID) Short() string {
	if len(id) < 8 {
		return string(id)
	}
	return string(id[:8])
}

func (id PanelID) String() string { return string(id) }

// IsZero reports whether id is unset.
func (id PanelID) IsZero() bool { return id == ZeroID }

// MaterialSpec describes the sheet stock a panel is cut from. Advisory.
type MaterialSpec struct {
	Name      string  `json:"name,omitempty"`      // e.g. "birch-ply", "acrylic"
	Thickness float64 `json:"thickness,omitempty"` // nominal thickness in mm
	Notes     string  `json:"notes,omitempty"`
}

// Panel is one named outline placed on the cutting sheet.
type Panel struct {
	ID       PanelID      `json:"id"`
	Name     string       `json:"name"`
	Params   joint.Params `json:"params"`
	Origin   joint.Point  `json:"origin"` // top-left corner of the base shape
	Material MaterialSpec `json:"material"`
}
