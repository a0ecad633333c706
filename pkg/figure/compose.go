package figure

import (
	"fmt"

	"github.com/google/uuid"
	"honnef.co/go/curve"

	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/fonts"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

// Namespace seeds the deterministic figure IDs.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/spiramirabilis"))

// Logo and caption placement, relative to the top-right corner of the
// untrimmed spiral, in centimetres.
const (
	LogoText        = "MMACA"
	logoWidth       = 3.35
	logoHeight      = 0.95
	logoTextSize    = 20.74 // pt
	captionTextSize = 14.4  // pt
	textInset       = 1.65
	logoBaseline    = 0.75
	captionBaseline = 1.65

	markerRadius = 0.25
	circleTol    = 1e-4
)

// composer carries the per-figure state while elements are emitted.
type composer struct {
	recipe Recipe
	styles StyleConfig
	factor float64
	fit    spiral.PageFit
	toPage curve.Affine
	origin curve.Point

	anchors spiral.Spiral
	rect    *spiral.Rectangle
	out     []Element
}

// Compose lays out the recipe's spiral on its page and emits every element
// in paint order: rectangle, chain, logo, caption, radii, spiral, markers and
// finally the border.
func Compose(r Recipe, styles StyleConfig) (*Figure, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := styles.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid styles")
	}

	set := r.Settings
	factor := r.FactorPerTurn()

	fit, err := r.Fit.Fit(factor, set.Page, set.PointsPerTurn, set.Radii, set.Turns)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}

	points, err := spiral.Sample(factor, set.Turns, set.PointsPerTurn, fit.Rotation)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	var radii spiral.Spiral
	if set.Radii > 0 {
		if radii, err = spiral.Markers(factor, set.Radii, fit.Rotation); err != nil {
			return nil, fmt.Errorf("markers: %w", err)
		}
	}

	box := points.BoundingBox()
	center := curve.Pt(fit.Scale*(box.MinX()+box.MaxX())/2, fit.Scale*(box.MinY()+box.MaxY())/2)
	shift := curve.Vec2(center).Negate()
	topRight := curve.Pt(fit.Scale*box.MaxX(), fit.Scale*box.MaxY()).Translate(shift)

	points, err = spiral.Trim(points, fit.Scale, set.MinRadius/spiral.MillimetresPerUnit, set.PointsPerTurn, set.Radii)
	if err != nil {
		return nil, fmt.Errorf("trim: %w", err)
	}

	c := &composer{
		recipe: r,
		styles: styles,
		factor: factor,
		fit:    fit,
		toPage: curve.Scale(fit.Scale, fit.Scale).ThenTranslate(shift),
		origin: curve.Point(shift),
	}

	if err := c.rectangle(); err != nil {
		return nil, err
	}
	if err := c.chain(shift); err != nil {
		return nil, err
	}
	if r.Logo {
		if err := c.logo(topRight); err != nil {
			return nil, err
		}
	}
	if r.Caption {
		if err := c.caption(topRight); err != nil {
			return nil, err
		}
	}
	for i, p := range radii {
		c.stroke(RoleRadius, curve.BezPath{curve.MoveTo(c.origin), curve.LineTo(p.Transform(c.toPage))}, styles.radius(i, set.Radii))
	}
	c.stroke(RoleSpiral, points.Transform(c.toPage).Path(), styles.Thick)
	if err := c.markers(); err != nil {
		return nil, err
	}
	c.border()

	title := r.Title
	if title == "" {
		title = r.CaptionText()
	}
	return &Figure{
		ID:       recipeID(r),
		Name:     r.Name,
		Title:    title,
		Page:     set.Page,
		Fit:      fit,
		Center:   center,
		TopRight: topRight,
		Points:   len(points),
		Elements: c.out,
	}, nil
}

// recipeID derives a stable ID from everything that changes the drawing.
func recipeID(r Recipe) uuid.UUID {
	key := fmt.Sprintf("%s|%g|%d|%s|%+v|%+v|%+v|%+v|%t|%t|%s",
		r.Name, r.Growth, r.Angle, r.Fit, r.Settings, r.Rectangle, r.Chain, r.Markers, r.Logo, r.Caption, r.Border)
	return uuid.NewSHA1(Namespace, []byte(key))
}

func (c *composer) stroke(role Role, path curve.BezPath, style LineStyle) {
	c.out = append(c.out, Element{Role: role, Path: path, Stroke: style.Stroke()})
}

func (c *composer) fill(role Role, path curve.BezPath, col Color) {
	c.out = append(c.out, Element{Role: role, Path: path, Fill: &col})
}

// resolve maps a reference to page coordinates.
func (c *composer) resolve(ref Ref) (curve.Point, error) {
	kind, n, err := ref.parse()
	if err != nil {
		return curve.Point{}, err
	}

	switch kind {
	case 'O':
		return c.origin, nil
	case 'R':
		set := c.recipe.Settings
		if set.Radii == 0 {
			return curve.Point{}, errors.New(errors.ErrCodeInvalidRecipe, "reference %q needs radii", ref)
		}
		if c.anchors == nil {
			// One marker per radius over every turn of the spiral.
			c.anchors, err = spiral.Sample(c.factor, set.Turns, set.Radii, c.fit.Rotation)
			if err != nil {
				return curve.Point{}, fmt.Errorf("anchors: %w", err)
			}
		}
		if n >= len(c.anchors) {
			return curve.Point{}, errors.New(errors.ErrCodeInvalidRecipe,
				"reference %q out of range: %d radius markers", ref, len(c.anchors))
		}
		return c.anchors[n].Transform(c.toPage), nil
	}

	if c.rect == nil {
		return curve.Point{}, errors.New(errors.ErrCodeInvalidRecipe, "corner %q without a rectangle", ref)
	}
	p, _ := c.rect.Corner(kind)
	return p, nil
}

func (c *composer) rectangle() error {
	spec := c.recipe.Rectangle
	if spec == nil {
		return nil
	}
	a, err := c.resolve(spec.From)
	if err != nil {
		return err
	}
	b, err := c.resolve(spec.To)
	if err != nil {
		return err
	}
	rect, err := spiral.BuildRectangle(a, b, spec.Ratio)
	if err != nil {
		return fmt.Errorf("rectangle: %w", err)
	}
	c.rect = &rect

	fill := c.styles.RectangleFill
	c.out = append(c.out, Element{
		Role:   RoleRectangle,
		Path:   rect.Polygon(spec.Triangle),
		Stroke: c.styles.Rectangle.Stroke(),
		Fill:   &fill,
	})
	return nil
}

func (c *composer) chain(shift curve.Vec2) error {
	spec := c.recipe.Chain
	if spec == nil {
		return nil
	}
	f, err := goldenChain(*spec)
	if err != nil {
		return fmt.Errorf("chain: %w", err)
	}
	move := shift.Add(chainOffset)
	for i := range f {
		f[i] = f[i].Translate(move)
	}

	if spec.Fill {
		core := curve.BezPath{curve.MoveTo(f[chainCore[0]])}
		for _, i := range chainCore[1:] {
			core = append(core, curve.LineTo(f[i]))
		}
		core = append(core, curve.ClosePath())

		fill := c.styles.RectangleFill
		c.out = append(c.out, Element{
			Role:   RoleRectangle,
			Path:   core,
			Stroke: c.styles.Rectangle.Stroke(),
			Fill:   &fill,
		})
	}
	for _, l := range chainLines {
		c.stroke(RoleChain, curve.BezPath{curve.MoveTo(f[l[0]]), curve.LineTo(f[l[1]])}, c.styles.Chain)
	}
	return nil
}

func (c *composer) logo(top curve.Point) error {
	box := curve.Rect{X0: top.X - logoWidth, Y0: top.Y - logoHeight, X1: top.X, Y1: top.Y}
	c.fill(RoleLogo, box.Path(circleTol), Black)
	return c.text(RoleLogo, LogoText, logoTextSize, true, curve.Pt(top.X-textInset, top.Y-logoBaseline), White)
}

func (c *composer) caption(top curve.Point) error {
	return c.text(RoleCaption, c.recipe.CaptionText(), captionTextSize, false, curve.Pt(top.X-textInset, top.Y-captionBaseline), Black)
}

// text fills the outline of s centred on at, with its baseline through at.
func (c *composer) text(role Role, s string, size float64, bold bool, at curve.Point, col Color) error {
	glyphs, err := fonts.Outline(s, size, bold)
	if err != nil {
		return fmt.Errorf("%s text: %w", role, err)
	}
	if len(glyphs) == 0 {
		return nil
	}
	c.fill(role, glyphs.Transform(curve.Translate(curve.Vec2(at))), col)
	return nil
}

func (c *composer) markers() error {
	for _, m := range c.recipe.Markers {
		p, err := c.resolve(m.At)
		if err != nil {
			return err
		}
		style := c.styles.Input
		if m.Role == RoleOutput {
			style = c.styles.Output
		}
		circle := curve.Circle{Center: p, Radius: markerRadius}
		c.stroke(m.Role, circle.Path(circleTol), style)
	}
	return nil
}

// border outlines the page half a millimetre inside its edge. It only
// appears in print output.
func (c *composer) border() {
	col, ok := c.recipe.Border.color()
	page := c.recipe.Settings.Page
	if !ok || page.Margin <= 0 {
		return
	}
	w := (page.Width - 1) / 20
	h := (page.Height - 1) / 20
	path := curve.BezPath{
		curve.MoveTo(curve.Pt(-w, -h)),
		curve.LineTo(curve.Pt(-w, h)),
		curve.LineTo(curve.Pt(w, h)),
		curve.LineTo(curve.Pt(w, -h)),
		curve.ClosePath(),
	}
	c.out = append(c.out, Element{
		Role:    RoleBorder,
		Path:    path,
		Stroke:  c.styles.Border.WithColor(col).Stroke(),
		PDFOnly: true,
	})
}
