// Package nodelink renders dumped widget trees as node-link diagrams.
//
// # Usage
//
// Convert a dumped [dump.Object] tree to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(doc.Root, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// Each node is labeled with the widget's assigned id and class. Detailed
// mode appends every emitted property, and packing values in brackets.
// Containers with visible children are filled grey.
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded
// box nodes.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
