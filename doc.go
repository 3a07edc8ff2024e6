// Package glyph implements the geometry core of a glyph outline editor:
// contours made of cubic or quadratic Bézier segments, and parametric contour
// operations that turn a skeleton contour into drawable geometry.
//
// # Contours and outlines
//
// A [Contour] is a sequence of [Node] values, each an on-curve point with an
// incoming and an outgoing [Handle]. A contour is either cubic or quadratic
// (see [Representation]), which fixes how its handles are interpreted. An
// [Outline] is an ordered list of contours, as found in a glyph.
//
// Contours are values. Editing functions such as [Contour.InsertPoint],
// [Contour.Extend], [Contour.DeletePoint], [Contour.Split] and
// [MergeContours] return new contours and never modify their inputs.
//
// # Contour operations
//
// A contour may carry an [Operation]. Its nodes then act as the skeleton of
// the operation, and [Build] resolves the pair into an [Outline]:
//
//   - [VariableWidthStroke] outlines the skeleton with a stroke whose width is
//     set per node.
//   - [PatternAlongPath] stamps copies of a pattern outline along the
//     skeleton, optionally bending them and merging overlapping copies.
//   - [DashAlongPath] cuts the skeleton into dashes of constant width.
//
// Operations may hold data per skeleton node. Whenever the node list of a
// contour changes, the operation has to change in lockstep; [Sub], [Append],
// [Insert] and [Remove] produce the operation matching the edited node list.
// The editing functions of this package take care of that.
//
// Building never fails. If an operation can't be resolved, [Build] logs the
// problem and returns the skeleton as is. [TryBuild] additionally reports
// the error. Diagnostics are written to the logger set with [SetLogger].
//
// # Curves
//
// Segments of contours can be accessed as [CubicBez] values. Subdivision uses
// de Casteljau's construction (see [CubicBez.SubdivideAt]), which is exact at
// the endpoints, so that inserting a point never moves the existing ones.
//
// # Import and export
//
// [FontLoader] reads glyph outlines from TrueType and OpenType fonts, for use
// as patterns. [Outline.Path] exposes outlines as [path.Path] iterators for
// renderers, and [WriteSVG] formats paths as SVG path data.
//
// [path.Path]: https://pkg.go.dev/seehuhn.de/go/geom/path#Path
package glyph
