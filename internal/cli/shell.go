package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treedump/pkg/script"
	"github.com/matzehuels/treedump/pkg/toolkit"
)

// shellCommand creates the interactive script console.
func (c *CLI) shellCommand() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "shell [snapshot]",
		Short: "Interactive script console against a widget tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if prefix == "" {
				prefix = cfg.Dump.Prefix
			}
			root, err := loadTree(args[0])
			if err != nil {
				return err
			}
			in, err := script.New(script.Options{Root: root, Prefix: prefix, Logger: c.Logger})
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewShellModel(cmd.Context(), in), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "prefix of synthetic ids used by treedump.Dump")
	return cmd
}

// classesCommand creates the class browser. With a class name, or with
// --plain, it prints tables instead of starting the interactive view.
func (c *CLI) classesCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "classes [class]",
		Short: "Browse the widget classes and their properties",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				class, err := toolkit.LookupClass(args[0])
				if err != nil {
					return err
				}
				_, err = out.Write([]byte(propertyTable(class) + "\n"))
				return err
			}
			m := NewClassListModel()
			if plain {
				_, err := out.Write([]byte(classTable(m.Classes, -1, 0, len(m.Classes)) + "\n"))
				return err
			}
			_, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the class table and exit")
	return cmd
}
