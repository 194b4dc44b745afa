package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treedump/pkg/pipeline"
	"github.com/matzehuels/treedump/pkg/server"
)

// serveCommand creates the serve command, which exposes a live tree over
// HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		prefix string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "serve [snapshot]",
		Short: "Serve a live widget tree over HTTP",
		Long: `Serve builds the tree described by a snapshot and keeps it alive behind an
HTTP inspector:

  GET  /healthz          liveness probe
  GET  /api/v1/dump      markup (?format=xml|json|dot|svg|png|pdf&detailed=1)
  POST /api/v1/eval      run a script against the tree ({"code": "..."})
  GET  /api/v1/watch     websocket stream of markup after every change`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if prefix == "" {
				prefix = cfg.Dump.Prefix
			}
			return c.runServe(cmd.Context(), args[0], addr, prefix, watch)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+server.DefaultAddr+")")
	cmd.Flags().StringVar(&prefix, "prefix", "", "prefix of synthetic ids")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rebuild the tree whenever the snapshot changes")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, input, addr, prefix string, watch bool) error {
	root, err := loadTree(input)
	if err != nil {
		return err
	}

	// Renders of a live tree are never cached.
	srv, err := server.New(root, server.Options{
		Addr:   addr,
		Prefix: prefix,
		Runner: pipeline.NewRunner(nil, nil, c.Logger),
		Logger: c.Logger,
	})
	if err != nil {
		return err
	}

	if watch {
		go func() {
			err := watchFile(ctx, input, func(ctx context.Context) error {
				root, err := loadTree(input)
				if err != nil {
					return err
				}
				srv.SetRoot(ctx, root)
				c.Logger.Info("tree reloaded", "path", input)
				return nil
			})
			if err != nil {
				c.Logger.Error("watch stopped", "error", err)
			}
		}()
	}

	printSuccess("Serving %s", input)
	printKeyValue("Address", "http://"+addr)
	printNextStep("Dump the live tree", "curl http://"+addr+"/api/v1/dump")
	return srv.ListenAndServe(ctx)
}
