package sink

import (
	"honnef.co/go/curve"
)

// Page units.
const (
	pointsPerMillimetre = 72 / 25.4
	pointsPerCentimetre = 72 / 2.54
	millimetresPerInch  = 25.4
	centimetresPerInch  = 2.54
)

// tracer receives a path with quadratic segments raised to cubics.
type tracer interface {
	moveTo(p curve.Point)
	lineTo(p curve.Point)
	cubicTo(p1, p2, p3 curve.Point)
	closePath()
}

func trace(t tracer, p curve.BezPath) {
	var start, cur curve.Point
	for _, el := range p {
		switch el.Kind {
		case curve.MoveToKind:
			t.moveTo(el.P0)
			start, cur = el.P0, el.P0
		case curve.LineToKind:
			t.lineTo(el.P0)
			cur = el.P0
		case curve.QuadToKind:
			c := curve.QuadBez{P0: cur, P1: el.P0, P2: el.P1}.Raise()
			t.cubicTo(c.P1, c.P2, c.P3)
			cur = el.P1
		case curve.CubicToKind:
			t.cubicTo(el.P0, el.P1, el.P2)
			cur = el.P2
		case curve.ClosePathKind:
			t.closePath()
			cur = start
		}
	}
}
