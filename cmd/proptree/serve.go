package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/proptree/proptree/internal/chapters"
	"github.com/proptree/proptree/internal/errors"
	"github.com/proptree/proptree/internal/telemetry"
	"github.com/proptree/proptree/pkg/mount"
	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/server"
)

func serveCmd(flags *rootFlags) *cobra.Command {
	var (
		addr     string
		noLive   bool
		snapshot bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the examples over HTTP",
		Long: `Serve every example under /examples/<name>.

Pages are composed on first request. Buttons post their events back to
the server, and alerts raised by callbacks are shown in the browser.
Metrics are exposed on /metrics.

Examples:
  proptree serve
  proptree serve --addr 0.0.0.0:8080 --snapshot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd, flags)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = p.cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shutdown, err := telemetry.Setup(ctx, telemetry.Config{
				Endpoint:    p.cfg.Telemetry.OTLPEndpoint,
				Insecure:    p.cfg.Telemetry.Insecure,
				ServiceName: p.cfg.Telemetry.ServiceName,
			})
			if err != nil {
				return errors.New("P040").WithDetail("telemetry setup failed").Wrap(err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				shutdown(ctx)
			}()

			pages, err := p.pages()
			if err != nil {
				return err
			}

			config := server.Config{
				Addr:      addr,
				Pages:     pages,
				Composer:  p.composer,
				Renderer:  p.renderer(false),
				Live:      p.cfg.LiveEnabled() && !noLive,
				StaticDir: p.cfg.AssetsDir(),
				Logger:    p.logger,
			}
			config.StaticPrefix = p.cfg.Assets.Prefix
			if snapshot {
				store, err := openSnapshots(p)
				if err != nil {
					return err
				}
				defer store.Close()
				config.Mount = store
			}

			srv := server.New(config)
			w := cmd.ErrOrStderr()
			success(w, "Serving %d examples on http://%s", len(pages), addr)
			if config.Live {
				info(w, "live updates enabled")
			}
			if err := srv.Run(ctx); err != nil {
				return errors.New("P040").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from proptree.json)")
	cmd.Flags().BoolVar(&noLive, "no-live", false, "Disable the live WebSocket")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Record every mounted page in the snapshot store")
	return cmd
}

// pages turns the examples into server pages. Property overrides are read
// once; dates are taken at every composition.
func (p *project) pages() ([]server.Page, error) {
	var pages []server.Page
	for _, ex := range chapters.List() {
		overrides, err := p.overrides(ex, "", nil)
		if err != nil {
			return nil, err
		}
		pages = append(pages, server.Page{
			Name:    ex.Name,
			Title:   p.mountOptions(ex).Title,
			Summary: ex.Summary,
			App:     ex.App,
			Props: func() props.Bundle {
				return ex.Bundle(time.Now(), overrides)
			},
		})
	}
	return pages, nil
}

// openSnapshots opens the configured snapshot store, creating its
// directory.
func openSnapshots(p *project) (*mount.Bolt, error) {
	path := p.cfg.SnapshotPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return mount.OpenBolt(path, mount.Options{Renderer: p.renderer(false), Logger: p.logger})
}
