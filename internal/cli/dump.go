package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/pipeline"
)

// stdoutPath as --output writes a single artifact to standard output.
const stdoutPath = "-"

// dumpOpts holds the flags shared by the dump and render commands.
type dumpOpts struct {
	output   string
	formats  []string
	prefix   string
	detailed bool
	scale    float64
	noCache  bool
	refresh  bool
	watch    bool
	// toStdout sends a lone artifact to stdout when no output is given.
	toStdout bool
}

// dumpCommand creates the dump command.
func (c *CLI) dumpCommand() *cobra.Command {
	var formatsStr string
	opts := dumpOpts{toStdout: true}

	cmd := &cobra.Command{
		Use:   "dump [snapshot]",
		Short: "Dump a widget tree snapshot as builder markup",
		Long: `Dump builds the widget tree described by a snapshot file (toml, yaml or json)
and serializes it. With a single format and no --output the result goes to
stdout; otherwise one file per format is written next to the output base path.`,
		Example: `  treedump dump form.toml
  treedump dump form.yaml -f xml,svg -o out/form
  treedump dump form.json --watch -o form.ui`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			opts.formats = parseFormats(formatsStr, cfg.Dump.Formats)
			if opts.prefix == "" {
				opts.prefix = cfg.Dump.Prefix
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runDumpCommand(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): xml (default), json, dot, svg, png, pdf (comma-separated)")
	c.dumpFlags(cmd, &opts)
	return cmd
}

// dumpFlags registers the flags common to dump and render.
func (c *CLI) dumpFlags(cmd *cobra.Command, opts *dumpOpts) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "prefix of synthetic ids (default from config, \"widget\")")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include properties in diagrams")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultPNGScale, "png resolution multiplier")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached dumps and rebuild")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-run whenever the snapshot changes")
}

// runDumpCommand runs one dump, then keeps re-running it under --watch.
func (c *CLI) runDumpCommand(cmd *cobra.Command, input string, opts dumpOpts) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	run := func(ctx context.Context) error {
		return c.runDump(ctx, cmd.OutOrStdout(), runner, input, opts)
	}
	if err := run(ctx); err != nil {
		if !opts.watch {
			return err
		}
		c.Logger.Error("dump failed", "error", err)
	}
	if !opts.watch {
		return nil
	}
	return watchFile(ctx, input, run)
}

// runDump executes the pipeline once and writes its artifacts.
func (c *CLI) runDump(ctx context.Context, stdout io.Writer, runner *pipeline.Runner, input string, opts dumpOpts) error {
	single := len(opts.formats) == 1
	toStdout := single && (opts.output == stdoutPath || (opts.output == "" && opts.toStdout))
	if opts.output == stdoutPath && !single {
		return errors.New(errors.ErrCodeInvalidInput, "--output - needs exactly one format, got %d", len(opts.formats))
	}

	var spin *Spinner
	if !toStdout {
		spin = newSpinner(ctx, uiOut, "Dumping "+input)
		defer spin.Stop()
	}
	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Snapshot: input,
		Formats:  opts.formats,
		Prefix:   opts.prefix,
		Detailed: opts.detailed,
		PNGScale: opts.scale,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}

	if toStdout {
		_, err := stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	spin.SetMessage("Writing " + strings.Join(opts.formats, ", "))
	paths, err := writeArtifacts(result.Artifacts, opts.formats, opts.output, input)
	spin.Stop()
	if err != nil {
		return err
	}
	for _, path := range paths {
		printFile(path)
	}
	printStats(result.Stats.Widgets, result.Stats.Properties, result.CacheInfo.DumpHit)
	prog.done("Dump complete")
	return nil
}

// writeArtifacts writes one file per format and returns the paths written.
// A single format with an explicit output is written to that exact path.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	base := basePath(output, input)
	inAbs, _ := filepath.Abs(input)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + pipeline.Extension(f)
		if len(formats) == 1 && output != "" {
			path = output
		}
		if abs, _ := filepath.Abs(path); abs == inAbs {
			return paths, errors.New(errors.ErrCodeInvalidPath, "refusing to overwrite snapshot %s; pass --output", input)
		}
		if err := writeFile(path, artifacts[f]); err != nil {
			return paths, errors.Wrap(errors.ErrCodeOutput, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	f, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
