// Package render converts rendered SVG diagrams to other formats.
//
// The [ToPDF] and [ToPNG] functions shell out to the external rsvg-convert
// tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [Available] reports whether the tool is installed so callers can reject
// pdf and png output up front.
//
// The [nodelink] subpackage renders widget trees as Graphviz diagrams.
//
// [nodelink]: github.com/matzehuels/treedump/pkg/render/nodelink
package render
