package glyph

import "errors"

var (
	// ErrIncompatibleOperations is returned by [Append] when both contours
	// carry operations of different kinds.
	ErrIncompatibleOperations = errors.New("glyph: incompatible contour operations")

	// ErrDegenerateSkeleton is returned when an operation's skeleton has too
	// few nodes or no length.
	ErrDegenerateSkeleton = errors.New("glyph: degenerate skeleton")
	// ErrEmptyPattern is returned when a pattern has no drawable contours.
	ErrEmptyPattern = errors.New("glyph: empty pattern")
	// ErrInvalidSpacing is returned for non-positive pattern spacing or copy
	// counts.
	ErrInvalidSpacing = errors.New("glyph: invalid pattern spacing")
	// ErrInvalidSubdivisions is returned when a pattern would be subdivided
	// more than MaxSubdivisions times.
	ErrInvalidSubdivisions = errors.New("glyph: too many pattern subdivisions")
	// ErrHandleCount is returned when a stroke's width handles don't line up
	// with the skeleton's nodes.
	ErrHandleCount = errors.New("glyph: width handles don't match skeleton")
	// ErrInvalidDashes is returned for dash arrays that can't be walked.
	ErrInvalidDashes = errors.New("glyph: invalid dash array")

	ErrContourIndex           = errors.New("glyph: contour index out of range")
	ErrSegmentIndex           = errors.New("glyph: segment index out of range")
	ErrNodeIndex              = errors.New("glyph: node index out of range")
	ErrContourClosed          = errors.New("glyph: contour is closed")
	ErrRepresentationMismatch = errors.New("glyph: contours have different representations")
)
