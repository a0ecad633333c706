// Package spiral is the geometry engine behind every diagram: it samples
// logarithmic spirals, fits them onto a page, trims the invisible centre and
// builds the rectangles used to illustrate ratios between spiral points.
//
// All functions are pure. They validate their inputs and return coded errors
// from pkg/errors instead of panicking, so a driver can report one bad figure
// and keep going with the rest of a batch.
//
// # Conventions
//
// Angles are measured clockwise from the positive y axis, so index 0 of an
// unrotated spiral sits straight above the origin. A growth factor f > 1 means
// the spiral shrinks by f every full turn as the index increases.
//
// Page sizes are in millimetres. Fitted scales map spiral units to centimetres,
// which is the drawing unit used by pkg/figure.
//
// # Pipeline
//
//	fit, _ := spiral.FitAuto(k, page, 360, 24)
//	s, _ := spiral.Sample(k, 10, 360, fit.Rotation)
//	s, _ = spiral.Trim(s, fit.Scale, 0.5, 360, 24)
package spiral
