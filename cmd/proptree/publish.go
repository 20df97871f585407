package main

import (
	"github.com/spf13/cobra"

	"github.com/proptree/proptree/internal/chapters"
	"github.com/proptree/proptree/internal/errors"
	"github.com/proptree/proptree/pkg/mount"
)

func publishCmd(flags *rootFlags) *cobra.Command {
	var (
		dir      string
		toS3     bool
		snapshot bool
	)

	cmd := &cobra.Command{
		Use:   "publish [example...]",
		Short: "Write examples as static HTML documents",
		Long: `Compose examples and mount them as static HTML documents, one
<name>.html per example. Without arguments every example is published.

Documents go to the publish directory, or to the configured S3 bucket
with --s3. With --snapshot each document is also recorded in the
snapshot store.

Examples:
  proptree publish
  proptree publish hello props --dir public
  proptree publish --s3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd, flags)
			if err != nil {
				return err
			}
			list, err := examples(args)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = p.cfg.PublishPath()
			}

			var store *mount.Bolt
			if snapshot {
				if store, err = openSnapshots(p); err != nil {
					return err
				}
				defer store.Close()
			}

			w := cmd.ErrOrStderr()
			for _, ex := range list {
				m, where, err := p.publishMount(ex, dir, toS3)
				if err != nil {
					return err
				}
				if store != nil {
					m = mount.Tee(m, store)
				}
				if err := p.publish(cmd, ex, m); err != nil {
					return err
				}
				success(w, "Published %s to %s", ex.Name, where)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Output directory (default from proptree.json)")
	cmd.Flags().BoolVar(&toS3, "s3", false, "Publish to the configured S3 bucket")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Also record documents in the snapshot store")
	return cmd
}

// publishMount returns the mount point for ex and a description of where
// it writes.
func (p *project) publishMount(ex chapters.Example, dir string, toS3 bool) (mount.Mount, string, error) {
	opts := p.mountOptions(ex)
	if !toS3 {
		d := mount.NewDir(dir, opts)
		file, err := d.Path(ex.Name)
		return d, file, err
	}

	s3cfg := mount.S3Config{
		Bucket:    p.cfg.S3.Bucket,
		Prefix:    p.cfg.S3.Prefix,
		Region:    p.cfg.S3.Region,
		Endpoint:  p.cfg.S3.Endpoint,
		PathStyle: p.cfg.S3.PathStyle,
	}
	if s3cfg.Bucket == "" {
		return nil, "", errors.New("P030").
			WithDetail("no S3 bucket configured").
			WithSuggestion(`Set "s3.bucket" in proptree.json or PROPTREE_S3_BUCKET`)
	}
	m := mount.NewS3(mount.NewS3Client(s3cfg), s3cfg, opts)
	return m, "s3://" + s3cfg.Bucket + "/" + m.Key(ex.Name), nil
}

func (p *project) publish(cmd *cobra.Command, ex chapters.Example, m mount.Mount) error {
	overrides, err := p.overrides(ex, "", nil)
	if err != nil {
		return err
	}
	tree, err := p.compose(ex, overrides)
	if err != nil {
		return err
	}
	if err := m.Mount(cmd.Context(), tree, ex.Name); err != nil {
		return errors.New("P030").WithComponent(ex.Name).Wrap(err)
	}
	return nil
}
