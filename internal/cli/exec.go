package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treedump/pkg/dump"
	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/script"
	"github.com/matzehuels/treedump/pkg/toolkit"
)

// execCommand creates the exec command, which runs one script against a
// freshly built tree.
func (c *CLI) execCommand() *cobra.Command {
	var (
		prefix  string
		dumpOut bool
	)

	cmd := &cobra.Command{
		Use:   "exec [snapshot] [script]",
		Short: "Run a script against a widget tree",
		Long: `Exec builds the tree described by a snapshot and runs a Go script against it.
Scripts import "treedump" to reach the tree:

  import "treedump"
  w := treedump.Find("submit-btn")
  w.SetAny("label", "Send")

Pass - as the script to read it from stdin. Output written by the script
goes to stdout and errors to stderr; --dump prints the markup afterwards.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if prefix == "" {
				prefix = cfg.Dump.Prefix
			}
			src, err := readScript(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			root, err := loadTree(args[0])
			if err != nil {
				return err
			}
			return c.runExec(cmd, root, src, prefix, dumpOut)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "prefix of synthetic ids")
	cmd.Flags().BoolVar(&dumpOut, "dump", false, "print the tree's markup after the script ran")
	return cmd
}

func (c *CLI) runExec(cmd *cobra.Command, root *toolkit.Widget, src, prefix string, dumpOut bool) error {
	in, err := script.New(script.Options{Root: root, Prefix: prefix, Logger: c.Logger})
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	err = in.Run(cmd.Context(), src,
		func(text string, _ any) { fmt.Fprint(stdout, text) },
		func(text string, _ any) { fmt.Fprint(stderr, text) },
		nil)
	if err != nil {
		return err
	}
	if !dumpOut {
		return nil
	}
	return dump.New(toolkit.Provider{}, dump.Options{Prefix: prefix, Logger: c.Logger}).Dump(stdout, in.Root())
}

// readScript returns the script at path, or stdin when path is "-".
func readScript(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdoutPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ErrCodeFileNotFound, "script not found: %s", path)
		}
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}
