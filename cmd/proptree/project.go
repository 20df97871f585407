package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/proptree/proptree/internal/chapters"
	"github.com/proptree/proptree/internal/config"
	"github.com/proptree/proptree/internal/errors"
	"github.com/proptree/proptree/pkg/assets"
	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/mount"
	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/render"
	"github.com/proptree/proptree/pkg/vdom"
)

var styles = struct {
	Success lipgloss.Style
	Name    lipgloss.Style
	Muted   lipgloss.Style
}{
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	Name:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
	Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// project is the loaded configuration plus everything derived from it.
type project struct {
	cfg      *config.Config
	logger   *slog.Logger
	composer *compose.Composer
	resolver assets.Resolver
}

func loadProject(cmd *cobra.Command, flags *rootFlags) (*project, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configFile != "" {
		if cfg, err = config.LoadFile(flags.configFile); err == nil {
			if err = cfg.ApplyEnv(os.Getenv); err == nil {
				err = cfg.Validate()
			}
		}
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}

	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	resolver, err := newResolver(cfg)
	if err != nil {
		return nil, err
	}

	return &project{
		cfg:    cfg,
		logger: logger,
		composer: compose.New(
			compose.WithMaxDepth(cfg.Compose.MaxDepth),
			compose.WithLogger(logger.With("component", "compose")),
		),
		resolver: resolver,
	}, nil
}

func newLogger(lc config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(lc.Level)
	if err != nil {
		return nil, errors.New("P041").WithDetail(fmt.Sprintf("unknown log level %q", lc.Level))
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func newResolver(cfg *config.Config) (assets.Resolver, error) {
	manifest := cfg.ManifestPath()
	if manifest == "" {
		return assets.NewPassthroughResolver(cfg.Assets.Prefix), nil
	}
	m, err := assets.Load(manifest)
	if err != nil {
		return nil, errors.New("P022").WithPath(manifest).Wrap(err)
	}
	return assets.NewResolver(m, cfg.Assets.Prefix), nil
}

// renderer returns a renderer using the project's asset resolver.
func (p *project) renderer(pretty bool) *render.Renderer {
	return render.NewRenderer(render.RendererConfig{
		Pretty: pretty || p.cfg.Render.Pretty,
		Indent: p.cfg.Render.Indent,
		Assets: p.resolver,
	})
}

// mountOptions returns mount options for an example.
func (p *project) mountOptions(ex chapters.Example) mount.Options {
	title := ex.Title
	if p.cfg.Title != "" {
		title = p.cfg.Title + " | " + ex.Title
	}
	return mount.Options{Renderer: p.renderer(false), Title: title, Logger: p.logger}
}

// examples resolves names to examples; no names means all of them.
func examples(names []string) ([]chapters.Example, error) {
	if len(names) == 0 {
		return chapters.List(), nil
	}
	out := make([]chapters.Example, 0, len(names))
	for _, name := range names {
		ex, err := chapters.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, nil
}

// overrides loads the property overrides of an example: the file given on
// the command line, or the one configured in proptree.json, followed by
// --set assignments.
func (p *project) overrides(ex chapters.Example, file string, sets []string) (props.Bundle, error) {
	if file == "" {
		file = p.cfg.PropsFile(ex.Name)
	}
	b := props.Bundle{}
	if file != "" {
		loaded, err := props.LoadFile(file)
		if err != nil {
			return props.Bundle{}, errors.New("P011").WithPath(file).Wrap(err)
		}
		b = loaded
	}
	for _, set := range sets {
		name, raw, ok := strings.Cut(set, "=")
		if !ok || name == "" {
			return props.Bundle{}, errors.New("P041").WithDetail(fmt.Sprintf("--set %q is not name=value", set))
		}
		b = b.With(name, parseScalar(raw))
	}
	return b, nil
}

// parseScalar reads a command-line value as a number, boolean or string.
func parseScalar(s string) props.Value {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return props.Number(n)
	}
	switch s {
	case "true":
		return props.Bool(true)
	case "false":
		return props.Bool(false)
	}
	return props.String(s)
}

// compose builds the root bundle of ex and composes it.
func (p *project) compose(ex chapters.Example, overrides props.Bundle) (*vdom.VNode, error) {
	start := time.Now()
	tree, err := p.composer.Compose(ex.App, ex.Bundle(time.Now(), overrides))
	if err != nil {
		return nil, err
	}
	p.logger.Debug("composed", "example", ex.Name, "duration", time.Since(start))
	return tree, nil
}
