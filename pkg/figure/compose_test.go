package figure

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"honnef.co/go/curve"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

func roles(f *Figure) []Role {
	out := make([]Role, len(f.Elements))
	for i, el := range f.Elements {
		out[i] = el.Role
	}
	return out
}

func repeat(r Role, n int) []Role {
	out := make([]Role, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func TestComposeTemplateOrder(t *testing.T) {
	fig, err := Compose(testRecipe(), DefaultStyles())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := []Role{RoleLogo, RoleLogo, RoleCaption}
	want = append(want, repeat(RoleRadius, DefaultRadii+1)...)
	want = append(want, RoleSpiral, RoleBorder)
	if d := cmp.Diff(want, roles(fig)); d != "" {
		t.Errorf("element roles mismatch (-want +got):\n%s", d)
	}

	if fig.Title != "φ / 90°" {
		t.Errorf("Title = %q, want the caption text", fig.Title)
	}
	if fig.Points < DefaultPointsPerTurn+1 {
		t.Errorf("Points = %d, want at least one turn", fig.Points)
	}
}

func TestComposeFitsPage(t *testing.T) {
	for _, angle := range []int{90, 180, 270, 360} {
		for _, mode := range []spiral.FitMode{spiral.AutoSearch, spiral.AnalyticSnap} {
			r := testRecipe()
			r.Angle = angle
			r.Fit = mode
			fig, err := Compose(r, DefaultStyles())
			if err != nil {
				t.Fatalf("Compose(angle=%d, %v) error = %v", angle, mode, err)
			}

			el, ok := fig.Find(RoleSpiral)
			if !ok {
				t.Fatal("no spiral element")
			}
			box := el.Path.ControlBox()
			page := fig.Page
			halfW := (page.Width - 2*page.Margin) / 20
			halfH := (page.Height - 2*page.Margin) / 20
			const eps = 1e-9
			if box.MinX() < -halfW-eps || box.MaxX() > halfW+eps || box.MinY() < -halfH-eps || box.MaxY() > halfH+eps {
				t.Errorf("angle %d %v: spiral box %v exceeds ±%v x ±%v", angle, mode, box, halfW, halfH)
			}
		}
	}
}

func TestComposeRadii(t *testing.T) {
	fig, err := Compose(testRecipe(), DefaultStyles())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	i := 0
	for _, el := range fig.Elements {
		if el.Role != RoleRadius {
			continue
		}
		if len(el.Path) != 2 {
			t.Fatalf("radius %d has %d elements, want 2", i, len(el.Path))
		}
		// Every radius starts at the spiral centre.
		if d := cmp.Diff(curve.Point(curve.Vec2(fig.Center).Negate()), el.Path[0].P0, cmp.Comparer(closePoints)); d != "" {
			t.Errorf("radius %d start mismatch:\n%s", i, d)
		}
		if dashed := len(el.Stroke.Dash) > 0; dashed != (i%2 == 1) {
			t.Errorf("radius %d dashed = %v, want %v", i, dashed, i%2 == 1)
		}
		i++
	}
}

func closePoints(a, b curve.Point) bool {
	return a.Distance(b) < 1e-9
}

func TestComposeRectangleAndMarkers(t *testing.T) {
	r := testRecipe()
	r.Name = "Example_02"
	r.Growth = math.Sqrt2
	r.Rectangle = &RectangleSpec{From: Origin, To: Radius(9), Ratio: 1 / math.Sqrt2}
	r.Markers = []Marker{Input("A"), Input("D"), Output("B")}
	r.Border = BorderBlack

	fig, err := Compose(r, DefaultStyles())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	got := roles(fig)
	if got[0] != RoleRectangle {
		t.Errorf("first element = %s, want rectangle", got[0])
	}
	tail := got[len(got)-4:]
	if d := cmp.Diff([]Role{RoleInput, RoleInput, RoleOutput, RoleBorder}, tail); d != "" {
		t.Errorf("trailing roles mismatch (-want +got):\n%s", d)
	}

	rect := fig.Elements[0]
	if rect.Fill == nil || rect.Stroke == nil {
		t.Fatalf("rectangle fill = %v, stroke = %v, want both", rect.Fill, rect.Stroke)
	}
	if len(rect.Path) != 5 {
		t.Fatalf("rectangle path has %d elements, want 5", len(rect.Path))
	}
	a, b, c := rect.Path[0].P0, rect.Path[1].P0, rect.Path[2].P0
	if dot := b.Sub(a).Dot(c.Sub(b)); math.Abs(dot) > 1e-9 {
		t.Errorf("AB.BC = %v, want 0", dot)
	}
	if got, want := c.Sub(b).Hypot(), b.Sub(a).Hypot()/math.Sqrt2; math.Abs(got-want) > 1e-9 {
		t.Errorf("|BC| = %v, want %v", got, want)
	}

	// The first input circle is centred on corner A, the spiral centre.
	circle := fig.Elements[len(fig.Elements)-4]
	centre := circle.Path.ControlBox().Center()
	if !closePoints(centre, a) && centre.Distance(a) > 1e-6 {
		t.Errorf("input marker centre = %v, want %v", centre, a)
	}
	if circle.Stroke.Color != Red {
		t.Errorf("input marker colour = %+v, want red", circle.Stroke.Color)
	}

	border := fig.Elements[len(fig.Elements)-1]
	if !border.PDFOnly || border.Stroke.Color != Black {
		t.Errorf("border = %+v, want a black print-only outline", border)
	}
}

func TestComposeTriangle(t *testing.T) {
	r := testRecipe()
	r.Growth = math.Sqrt(3)
	r.Angle = 270
	r.Rectangle = &RectangleSpec{From: Radius(1), To: Origin, Ratio: 1 / math.Sqrt(3), Triangle: true}
	r.Markers = []Marker{Input("B"), Input("C"), Output("A")}

	fig, err := Compose(r, DefaultStyles())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if n := len(fig.Elements[0].Path); n != 4 {
		t.Errorf("triangle path has %d elements, want 4", n)
	}
}

func TestComposeChain(t *testing.T) {
	for _, fill := range []bool{true, false} {
		r := testRecipe()
		r.Chain = &ChainSpec{Lambda: 0.8, Alpha: 90, Fill: fill}
		fig, err := Compose(r, DefaultStyles())
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if n := fig.Count(RoleChain); n != len(chainLines) {
			t.Errorf("fill=%v: %d chain lines, want %d", fill, n, len(chainLines))
		}
		wantCore := 0
		if fill {
			wantCore = 1
		}
		if n := fig.Count(RoleRectangle); n != wantCore {
			t.Errorf("fill=%v: %d core squares, want %d", fill, n, wantCore)
		}
		for _, el := range fig.Elements {
			if el.Role == RoleChain && (el.Stroke.Color != Blue || len(el.Stroke.Dash) == 0) {
				t.Errorf("chain line stroke = %+v, want dashed blue", el.Stroke)
				break
			}
		}
	}
}

func TestGoldenChainSides(t *testing.T) {
	f, err := goldenChain(DefaultChain)
	if err != nil {
		t.Fatalf("goldenChain() error = %v", err)
	}
	fib := []float64{1, 1, 2, 3, 5, 8, 13, 21}
	for k, pair := range chainPairs {
		side := f[pair[1]].Distance(f[pair[0]])
		if want := DefaultChain.Lambda * fib[k]; math.Abs(side-want) > 1e-9 {
			t.Errorf("square %d side = %v, want %v", k, side, want)
		}
	}
	if d := f[2].Distance(curve.Pt(-0.8, 0.8)); d > 1e-9 {
		t.Errorf("F2 = %v, want (-0.8, 0.8)", f[2])
	}
}

func TestComposeWithoutDecorations(t *testing.T) {
	r := testRecipe()
	r.Logo, r.Caption = false, false
	r.Border = BorderNone
	fig, err := Compose(r, DefaultStyles())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	for _, role := range []Role{RoleLogo, RoleCaption, RoleBorder} {
		if n := fig.Count(role); n != 0 {
			t.Errorf("Count(%s) = %d, want 0", role, n)
		}
	}

	r.Border = BorderBlack
	r.Settings.Page.Margin = 0
	fig, err = Compose(r, DefaultStyles())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if n := fig.Count(RoleBorder); n != 0 {
		t.Errorf("border drawn without margin")
	}
}

func TestComposeNoRadii(t *testing.T) {
	r := testRecipe()
	r.Settings.Radii = 0
	fig, err := Compose(r, DefaultStyles())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if n := fig.Count(RoleRadius); n != 0 {
		t.Errorf("Count(radius) = %d, want 0", n)
	}
	if fig.Fit.Rotation != 0 {
		t.Errorf("Fit.Rotation = %v, want 0 without markers", fig.Fit.Rotation)
	}

	r.Markers = []Marker{Output(Radius(3))}
	if _, err := Compose(r, DefaultStyles()); !errors.Is(err, errors.ErrCodeInvalidRecipe) {
		t.Errorf("Compose() error = %v, want %s", err, errors.ErrCodeInvalidRecipe)
	}
}

func TestComposeErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Recipe)
		code   errors.Code
	}{
		{"reference out of range", func(r *Recipe) {
			r.Markers = []Marker{Output(Radius(10_000))}
		}, errors.ErrCodeInvalidRecipe},
		{"degenerate rectangle", func(r *Recipe) {
			r.Rectangle = &RectangleSpec{From: Origin, To: Origin, Ratio: 1}
		}, errors.ErrCodeDegenerateRectangle},
		{"nothing visible", func(r *Recipe) {
			r.Settings.MinRadius = 1e6
		}, errors.ErrCodeDegenerateVisibility},
		{"shrinking spiral", func(r *Recipe) { r.Growth = 0.9 }, errors.ErrCodePrecondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRecipe()
			tt.modify(&r)
			if _, err := Compose(r, DefaultStyles()); !errors.Is(err, tt.code) {
				t.Errorf("Compose() error = %v, want %s", err, tt.code)
			}
		})
	}

	bad := DefaultStyles()
	bad.Base.Width = -1
	if _, err := Compose(testRecipe(), bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Compose(bad styles) error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestComposeDeterministicID(t *testing.T) {
	a, err := Compose(testRecipe(), DefaultStyles())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	b, _ := Compose(testRecipe(), DefaultStyles())
	if a.ID != b.ID {
		t.Errorf("IDs differ: %v vs %v", a.ID, b.ID)
	}

	r := testRecipe()
	r.Angle = 180
	c, _ := Compose(r, DefaultStyles())
	if c.ID == a.ID {
		t.Errorf("different recipes share ID %v", a.ID)
	}
}

func TestFigureBounds(t *testing.T) {
	f := &Figure{Page: spiral.A4}
	want := curve.Rect{X0: -10.5, Y0: -14.85, X1: 10.5, Y1: 14.85}
	if d := cmp.Diff(want, f.Bounds(), cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-12 })); d != "" {
		t.Errorf("Bounds() mismatch (-want +got):\n%s", d)
	}
}
