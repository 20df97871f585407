package mount

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/proptree/proptree/pkg/render"
	"github.com/proptree/proptree/pkg/vdom"
)

// Dir writes each target as an HTML document <dir>/<target>.html.
type Dir struct {
	root string
	opts Options
}

// NewDir creates a directory mount point. The directory is created on the
// first mount.
func NewDir(root string, opts Options) *Dir {
	return &Dir{root: root, opts: opts.withDefaults("mount.dir")}
}

// Path returns the file a target is written to.
func (d *Dir) Path(target string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(target))
	if target == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("mount: invalid target %q", target)
	}
	return filepath.Join(d.root, clean+".html"), nil
}

// Mount implements Mount. The file is replaced atomically.
func (d *Dir) Mount(ctx context.Context, tree *vdom.VNode, target string) error {
	file, err := d.Path(target)
	if err != nil {
		return err
	}
	page, err := renderPage(d.opts.Renderer, tree, target)
	if err != nil {
		return err
	}
	doc, err := Document(d.opts.Renderer, page, render.PageData{Title: d.opts.Title})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("mount %s: %w", target, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(file), ".proptree-*")
	if err != nil {
		return fmt.Errorf("mount %s: %w", target, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("mount %s: %w", target, err)
	}
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("mount %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("mount %s: %w", target, err)
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return fmt.Errorf("mount %s: %w", target, err)
	}

	d.opts.Logger.InfoContext(ctx, "wrote page", "target", target, "path", file, "bytes", len(doc))
	return nil
}
