package mount

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"github.com/proptree/proptree/pkg/props"
	. "github.com/proptree/proptree/pkg/vdom"
)

func greetTree(onClick func()) *VNode {
	return Div(
		H1("Welcome to 30 Days Of React"),
		Button(OnClick(onClick), "Greet People"),
	)
}

func TestMemoryMountAndDispatch(t *testing.T) {
	m := NewMemory(Options{})
	ctx := context.Background()

	var clicks atomic.Int32
	require.NoError(t, m.Mount(ctx, greetTree(func() { clicks.Add(1) }), "hello"))
	require.Zero(t, clicks.Load(), "handler ran during mount")

	page, ok := m.Page("hello")
	require.True(t, ok)
	require.Contains(t, page.Body, `data-hid="h1"`)
	require.Equal(t, 1, page.Handlers.Len())
	require.Equal(t, []string{"hello"}, m.Targets())

	require.NoError(t, m.Dispatch(ctx, "hello", "h1", "click"))
	require.EqualValues(t, 1, clicks.Load())

	err := m.Dispatch(ctx, "hello", "h9", "click")
	require.ErrorIs(t, err, ErrUnknownHandler)

	err = m.Dispatch(ctx, "missing", "h1", "click")
	require.ErrorIs(t, err, ErrUnknownTarget)
}

func TestMemoryMountIsFullReplace(t *testing.T) {
	m := NewMemory(Options{})
	ctx := context.Background()

	require.NoError(t, m.Mount(ctx, greetTree(func() {}), "page"))
	require.NoError(t, m.Mount(ctx, P("replaced"), "page"))

	page, _ := m.Page("page")
	require.Equal(t, "<p>replaced</p>", page.Body)
	require.Zero(t, page.Handlers.Len(), "old handlers must not survive a replace")

	require.NoError(t, m.Mount(ctx, nil, "page"))
	page, _ = m.Page("page")
	require.Empty(t, page.Body)
}

func TestMemorySubscribe(t *testing.T) {
	m := NewMemory(Options{})
	ctx := context.Background()

	var got []string
	cancel := m.Subscribe(func(p Page) { got = append(got, p.Target+":"+p.Body) })

	require.NoError(t, m.Mount(ctx, P("a"), "t"))
	require.NoError(t, m.Mount(ctx, P("a"), "t"))
	require.NoError(t, m.Mount(ctx, P("b"), "t"))
	cancel()
	require.NoError(t, m.Mount(ctx, P("c"), "t"))

	require.Equal(t, []string{"t:<p>a</p>", "t:<p>b</p>"}, got)
}

func TestMemoryDispatchCanRemount(t *testing.T) {
	m := NewMemory(Options{})
	ctx := context.Background()

	var tree *VNode
	tree = Button(OnClick(func(ctx context.Context) error {
		return m.Mount(ctx, P("clicked"), "counter")
	}), "go")
	require.NoError(t, m.Mount(ctx, tree, "counter"))
	require.NoError(t, m.Dispatch(ctx, "counter", "h1", "click"))

	page, _ := m.Page("counter")
	require.Equal(t, "<p>clicked</p>", page.Body)
}

func TestDispatchError(t *testing.T) {
	m := NewMemory(Options{})
	ctx := context.Background()
	boom := errors.New("boom")

	require.NoError(t, m.Mount(ctx, Button(OnClick(func(context.Context) error { return boom })), "t"))
	require.ErrorIs(t, m.Dispatch(ctx, "t", "h1", "click"), boom)
}

func TestMountDoesNotMutateTree(t *testing.T) {
	tree := greetTree(func() {})
	before := len(tree.Children[1].Attrs)

	require.NoError(t, NewMemory(Options{}).Mount(context.Background(), tree, "x"))
	require.Len(t, tree.Children[1].Attrs, before)
	require.Empty(t, tree.Children[1].Key)
}

func TestMountRejectsUncomposedTree(t *testing.T) {
	comp := RenderFunc(func(props.Bundle) (*VNode, error) { return nil, nil })
	err := NewMemory(Options{}).Mount(context.Background(), Div(Use(comp, props.Bundle{})), "x")
	require.Error(t, err)
}

func TestAlert(t *testing.T) {
	var log AlertLog
	ctx := WithAlerter(context.Background(), &log)

	Alert(ctx, "Welcome to 30 Days Of React Challenge, 2020")
	Alert(ctx, "second")
	require.Equal(t, []string{"Welcome to 30 Days Of React Challenge, 2020", "second"}, log.Messages())

	var got string
	Alert(WithAlerter(context.Background(), AlertFunc(func(msg string) { got = msg })), "hi")
	require.Equal(t, "hi", got)

	// No alerter: logged, not panicking.
	Alert(context.Background(), "ignored")
}

func TestDirMount(t *testing.T) {
	root := t.TempDir()
	d := NewDir(root, Options{Title: "30 Days Of React"})
	ctx := context.Background()

	require.NoError(t, d.Mount(ctx, H1("Hello, Aytekin!"), "chapters/hello"))
	require.NoError(t, d.Mount(ctx, H1("Hello, Aytekin!"), "chapters/hello"))

	data, err := os.ReadFile(filepath.Join(root, "chapters", "hello.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), "<title>30 Days Of React</title>")
	require.Contains(t, string(data), `<div id="root"><h1>Hello, Aytekin!</h1></div>`)

	entries, err := os.ReadDir(filepath.Join(root, "chapters"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files left behind")

	for _, bad := range []string{"", "../escape", "/abs"} {
		require.Error(t, d.Mount(ctx, P("x"), bad), "target %q", bad)
	}
}

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestS3Mount(t *testing.T) {
	fake := &fakePutter{}
	m := NewS3(fake, S3Config{Bucket: "site", Prefix: "react/"}, Options{})
	ctx := context.Background()

	require.NoError(t, m.Mount(ctx, P("hi"), "intro"))
	require.Len(t, fake.inputs, 1)

	in := fake.inputs[0]
	require.Equal(t, "site", *in.Bucket)
	require.Equal(t, "react/intro.html", *in.Key)
	require.Equal(t, "text/html; charset=utf-8", *in.ContentType)
	require.EqualValues(t, len(fake.bodies[0]), *in.ContentLength)
	require.Contains(t, fake.bodies[0], "<p>hi</p>")
	require.Equal(t, strings.Trim(ETag("<p>hi</p>"), `"`), in.Metadata["proptree-etag"])

	fake.err = errors.New("denied")
	require.ErrorContains(t, m.Mount(ctx, P("hi"), "intro"), "denied")

	require.Error(t, NewS3(fake, S3Config{}, Options{}).Mount(ctx, P("x"), "t"))
}

func TestBoltSnapshots(t *testing.T) {
	store, err := OpenBolt(filepath.Join(t.TempDir(), "snapshots.db"), Options{})
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Mount(ctx, P("v1"), "props"))
	require.NoError(t, store.Mount(ctx, P("v1"), "props"))
	require.NoError(t, store.Mount(ctx, P("v2"), "props"))
	require.NoError(t, store.Mount(ctx, P("other"), "intro"))

	targets, err := store.Targets()
	require.NoError(t, err)
	require.Equal(t, []string{"intro", "props"}, targets)

	hist, err := store.History("props")
	require.NoError(t, err)
	require.Len(t, hist, 2, "identical renderings are recorded once")
	require.EqualValues(t, 1, hist[0].Seq)
	require.EqualValues(t, 2, hist[1].Seq)
	require.Empty(t, hist[0].Document)

	latest, err := store.Latest("props")
	require.NoError(t, err)
	require.EqualValues(t, 2, latest.Seq)
	require.Contains(t, latest.Document, "<p>v2</p>")

	first, err := store.Get("props", 1)
	require.NoError(t, err)
	require.Contains(t, first.Document, "<p>v1</p>")

	_, err = store.Get("props", 9)
	require.ErrorIs(t, err, ErrNoSnapshot)
	_, err = store.Latest("nope")
	require.ErrorIs(t, err, ErrNoSnapshot)
}

type recordMount struct{ targets []string }

func (r *recordMount) Mount(_ context.Context, _ *VNode, target string) error {
	r.targets = append(r.targets, target)
	return nil
}

func TestTee(t *testing.T) {
	a, b := &recordMount{}, &recordMount{}
	require.NoError(t, Tee(a, b).Mount(context.Background(), P("x"), "t"))
	require.Equal(t, []string{"t"}, a.targets)
	require.Equal(t, []string{"t"}, b.targets)
}
