package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/treedump/pkg/dump"
	"github.com/matzehuels/treedump/pkg/observability"
	"github.com/matzehuels/treedump/pkg/render"
	"github.com/matzehuels/treedump/pkg/render/nodelink"
)

// RenderDocument produces every requested format from doc.
// The DOT source and the SVG are computed at most once per call.
func RenderDocument(ctx context.Context, doc *dump.Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Dump()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, doc, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormats(ctx context.Context, doc *dump.Document, opts Options) (map[string][]byte, error) {
	var (
		dot string
		svg []byte
	)
	needDOT := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(doc.Root, nodelink.Options{Detailed: opts.Detailed})
		}
		return dot
	}
	needSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		out, err := nodelink.RenderSVG(ctx, needDOT())
		if err != nil {
			return nil, err
		}
		svg = out
		return svg, nil
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatXML:
			var buf bytes.Buffer
			err = dump.WriteMarkup(&buf, doc)
			data = buf.Bytes()
		case FormatJSON:
			var buf bytes.Buffer
			err = dump.WriteJSON(&buf, doc)
			data = buf.Bytes()
		case FormatDOT:
			data = []byte(needDOT())
		case FormatSVG:
			data, err = needSVG()
		case FormatPNG:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.PNGScale)
			}
		case FormatPDF:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		opts.Logger.Debug("rendered format", "format", format, "bytes", len(data))
	}
	return artifacts, nil
}
