package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/pipeline"
)

// diagramFormats are the formats the render command produces.
var diagramFormats = map[string]bool{
	pipeline.FormatDOT: true,
	pipeline.FormatSVG: true,
	pipeline.FormatPNG: true,
	pipeline.FormatPDF: true,
}

// renderCommand creates the render command for node-link diagrams.
// Unlike dump it always writes files unless --output is "-".
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts dumpOpts

	cmd := &cobra.Command{
		Use:   "render [snapshot]",
		Short: "Render a widget tree as a node-link diagram",
		Long: `Render draws the dumped tree with graphviz. Each node shows the synthetic id
and class of one widget; --detailed adds its properties and packing.
png and pdf output need rsvg-convert on PATH.`,
		Example: `  treedump render form.toml
  treedump render form.toml -f svg,png --scale 3 --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			opts.formats = parseFormats(formatsStr, []string{pipeline.FormatSVG})
			if opts.prefix == "" {
				opts.prefix = cfg.Dump.Prefix
			}
			if err := validateDiagramFormats(opts.formats); err != nil {
				return err
			}
			return c.runDumpCommand(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	c.dumpFlags(cmd, &opts)
	return cmd
}

// validateDiagramFormats checks that every format is a diagram format.
func validateDiagramFormats(formats []string) error {
	for _, f := range formats {
		if !diagramFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid diagram format: %q (must be one of: dot, svg, png, pdf)", f)
		}
	}
	return nil
}
