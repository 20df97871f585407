package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/proptree/proptree/pkg/mount"
)

func snapshotCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record and inspect rendered examples in the snapshot store",
		Long: `The snapshot store is a bbolt database keeping the latest rendering of
every example plus a history of distinct renderings.`,
	}
	cmd.AddCommand(
		snapshotSaveCmd(flags),
		snapshotListCmd(flags),
		snapshotHistoryCmd(flags),
		snapshotShowCmd(flags),
	)
	return cmd
}

func withSnapshots(cmd *cobra.Command, flags *rootFlags, fn func(*project, *mount.Bolt) error) error {
	p, err := loadProject(cmd, flags)
	if err != nil {
		return err
	}
	store, err := openSnapshots(p)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(p, store)
}

func snapshotSaveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "save [example...]",
		Short: "Compose examples and store their documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := examples(args)
			if err != nil {
				return err
			}
			return withSnapshots(cmd, flags, func(p *project, store *mount.Bolt) error {
				for _, ex := range list {
					if err := p.publish(cmd, ex, store); err != nil {
						return err
					}
					snap, err := store.Latest(ex.Name)
					if err != nil {
						return err
					}
					success(cmd.ErrOrStderr(), "Stored %s #%d %s", ex.Name, snap.Seq, snap.ETag)
				}
				return nil
			})
		},
	}
}

func snapshotListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the latest snapshot of every target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshots(cmd, flags, func(_ *project, store *mount.Bolt) error {
				targets, err := store.Targets()
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, t := range targets {
					snap, err := store.Latest(t)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%-12s #%-4d %s %s\n", t, snap.Seq, snap.ETag, snap.MountedAt.Format(time.RFC3339))
				}
				return nil
			})
		},
	}
}

func snapshotHistoryCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "history <target>",
		Short: "List the stored renderings of a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshots(cmd, flags, func(_ *project, store *mount.Bolt) error {
				history, err := store.History(args[0])
				if err != nil {
					return err
				}
				if len(history) == 0 {
					return fmt.Errorf("%w: %s", mount.ErrNoSnapshot, args[0])
				}
				w := cmd.OutOrStdout()
				for _, s := range history {
					fmt.Fprintf(w, "#%-4d %s %s\n", s.Seq, s.ETag, s.MountedAt.Format(time.RFC3339))
				}
				return nil
			})
		},
	}
}

func snapshotShowCmd(flags *rootFlags) *cobra.Command {
	var seq string

	cmd := &cobra.Command{
		Use:   "show <target>",
		Short: "Print a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshots(cmd, flags, func(_ *project, store *mount.Bolt) error {
				var (
					snap mount.Snapshot
					err  error
				)
				if seq == "" {
					snap, err = store.Latest(args[0])
				} else {
					n, perr := strconv.ParseUint(seq, 10, 64)
					if perr != nil {
						return fmt.Errorf("invalid --seq %q: %w", seq, perr)
					}
					snap, err = store.Get(args[0], n)
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), snap.Document)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&seq, "seq", "", "Snapshot number (default: latest)")
	return cmd
}
