package figure

import (
	"github.com/google/uuid"
	"honnef.co/go/curve"

	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

// Role tags what an element depicts. Sinks ignore it except for grouping.
type Role string

const (
	RoleRectangle Role = "rectangle"
	RoleChain     Role = "chain"
	RoleLogo      Role = "logo"
	RoleCaption   Role = "caption"
	RoleRadius    Role = "radius"
	RoleSpiral    Role = "spiral"
	RoleInput     Role = "input"
	RoleOutput    Role = "output"
	RoleBorder    Role = "border"
)

// Element is one painted path. A non-nil Fill is painted before a non-nil
// Stroke. Coordinates are centimetres with the page centre at the origin and
// y pointing up.
type Element struct {
	Role    Role          `json:"role"`
	Path    curve.BezPath `json:"path"`
	Stroke  *Stroke       `json:"stroke,omitempty"`
	Fill    *Color        `json:"fill,omitempty"`
	PDFOnly bool          `json:"pdf_only,omitempty"`
}

// Figure is a composed scene, ready for any sink.
type Figure struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Title string    `json:"title"`

	Page     spiral.Page    `json:"page"`
	Fit      spiral.PageFit `json:"fit"`
	Center   curve.Point    `json:"center"`
	TopRight curve.Point    `json:"top_right"`
	Points   int            `json:"points"`

	Elements []Element `json:"elements"`
}

// Bounds returns the page in drawing units, centred on the origin.
func (f *Figure) Bounds() curve.Rect {
	w := f.Page.Width / spiral.MillimetresPerUnit / 2
	h := f.Page.Height / spiral.MillimetresPerUnit / 2
	return curve.Rect{X0: -w, Y0: -h, X1: w, Y1: h}
}

// Count returns the number of elements with the given role.
func (f *Figure) Count(role Role) int {
	n := 0
	for _, el := range f.Elements {
		if el.Role == role {
			n++
		}
	}
	return n
}

// Find returns the first element with the given role.
func (f *Figure) Find(role Role) (Element, bool) {
	for _, el := range f.Elements {
		if el.Role == role {
			return el, true
		}
	}
	return Element{}, false
}
