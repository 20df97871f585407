package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/proptree/proptree/internal/chapters"
)

func listCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in examples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, ex := range chapters.List() {
				fmt.Fprintf(w, "%s %s %s\n",
					styles.Name.Render(fmt.Sprintf("%-12s", ex.Name)),
					styles.Muted.Render(fmt.Sprintf("ch%d", ex.Chapter)),
					ex.Title,
				)
				fmt.Fprintf(w, "                 %s\n", styles.Muted.Render(ex.Summary))
			}
			return nil
		},
	}
}
