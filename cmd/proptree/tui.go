package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/proptree/proptree/internal/chapters"
	"github.com/proptree/proptree/internal/tui"
	"github.com/proptree/proptree/pkg/mount"
	"github.com/proptree/proptree/pkg/vdom"
)

func tuiCmd(flags *rootFlags) *cobra.Command {
	var cf composeFlags

	cmd := &cobra.Command{
		Use:   "tui <example>",
		Short: "Mount an example in the terminal and dispatch its callbacks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd, flags)
			if err != nil {
				return err
			}
			ex, err := chapters.Get(args[0])
			if err != nil {
				return err
			}
			overrides, err := p.overrides(ex, cf.propsFile, cf.sets)
			if err != nil {
				return err
			}

			// The terminal belongs to the UI; logs would corrupt it.
			p.logger = slog.New(slog.DiscardHandler)
			slog.SetDefault(p.logger)
			memory := mount.NewMemory(p.mountOptions(ex))
			model := tui.New(cmd.Context(), memory, ex.Name, ex.Title, func() (*vdom.VNode, error) {
				return p.compose(ex, overrides)
			})
			return tui.Run(model)
		},
	}

	cf.register(cmd)
	return cmd
}
