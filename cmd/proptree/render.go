package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/proptree/proptree/internal/chapters"
	"github.com/proptree/proptree/internal/tui"
	"github.com/proptree/proptree/pkg/render"
)

// composeFlags select the property overrides of a composition.
type composeFlags struct {
	propsFile string
	sets      []string
}

func (f *composeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.propsFile, "props", "p", "", "YAML or JSON file with property overrides")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "Override a top-level property (name=value, repeatable)")
}

func renderCmd(flags *rootFlags) *cobra.Command {
	var (
		cf     composeFlags
		pretty bool
		page   bool
		out    string
	)

	cmd := &cobra.Command{
		Use:   "render <example>",
		Short: "Compose an example and print its HTML",
		Long: `Compose an example and print the HTML of the final tree.

Examples:
  proptree render hello
  proptree render hello --set name=Asabeneh
  proptree render boilerplate --pretty --page -o boilerplate.html`,
		Args: cobra.ExactArgs(1),
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
			tree, err := p.compose(ex, overrides)
			if err != nil {
				return err
			}

			r := p.renderer(pretty)
			var buf bytes.Buffer
			if page {
				_, err = r.RenderPage(&buf, render.PageData{Title: p.mountOptions(ex).Title, Body: tree})
			} else {
				_, err = r.RenderToWriter(&buf, tree)
				buf.WriteByte('\n')
			}
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "Wrote %s", out)
			return nil
		},
	}

	cf.register(cmd)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the tree in a complete HTML document")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

func treeCmd(flags *rootFlags) *cobra.Command {
	var cf composeFlags

	cmd := &cobra.Command{
		Use:   "tree <example>",
		Short: "Compose an example and print the final tree as an outline",
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
			tree, err := p.compose(ex, overrides)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.Outline(tree))
			return nil
		},
	}

	cf.register(cmd)
	return cmd
}
