package mount

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/proptree/proptree/pkg/render"
	"github.com/proptree/proptree/pkg/vdom"
)

const (
	bucketLatest  = "latest"
	bucketHistory = "history"
)

// ErrNoSnapshot is returned when a snapshot does not exist.
var ErrNoSnapshot = errors.New("mount: no such snapshot")

// Snapshot is a stored rendering of a target.
type Snapshot struct {
	Target    string    `json:"target"`
	Seq       uint64    `json:"seq"`
	ETag      string    `json:"etag"`
	Document  string    `json:"document"`
	MountedAt time.Time `json:"mountedAt"`
}

// Bolt stores rendered documents in a bbolt database. Every target keeps
// its latest snapshot plus a history of distinct renderings.
type Bolt struct {
	db   *bolt.DB
	opts Options
}

// OpenBolt opens (creating if needed) the snapshot database at file.
func OpenBolt(file string, opts Options) (*Bolt, error) {
	db, err := bolt.Open(file, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("mount: open snapshot store %s: %w", file, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketLatest, bucketHistory} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("mount: initialize snapshot store: %w", err)
	}
	return &Bolt{db: db, opts: opts.withDefaults("mount.bolt")}, nil
}

// Close closes the database.
func (b *Bolt) Close() error { return b.db.Close() }

// Mount implements Mount. A rendering identical to the latest snapshot is
// not recorded again.
func (b *Bolt) Mount(ctx context.Context, tree *vdom.VNode, target string) error {
	page, err := renderPage(b.opts.Renderer, tree, target)
	if err != nil {
		return err
	}
	doc, err := Document(b.opts.Renderer, page, render.PageData{Title: b.opts.Title})
	if err != nil {
		return err
	}

	var snap Snapshot
	err = b.db.Update(func(tx *bolt.Tx) error {
		latest := tx.Bucket([]byte(bucketLatest))
		if prev := latest.Get([]byte(target)); prev != nil {
			var p Snapshot
			if err := json.Unmarshal(prev, &p); err == nil && p.ETag == page.ETag {
				snap = p
				return nil
			}
		}

		hist, err := tx.Bucket([]byte(bucketHistory)).CreateBucketIfNotExists([]byte(target))
		if err != nil {
			return err
		}
		seq, err := hist.NextSequence()
		if err != nil {
			return err
		}
		snap = Snapshot{
			Target:    target,
			Seq:       seq,
			ETag:      page.ETag,
			Document:  string(doc),
			MountedAt: page.MountedAt,
		}
		data, err := json.Marshal(snap)
		if err != nil {
			return err
		}
		if err := hist.Put(marshalSeq(seq), data); err != nil {
			return err
		}
		return latest.Put([]byte(target), data)
	})
	if err != nil {
		return fmt.Errorf("mount %s: %w", target, err)
	}

	b.opts.Logger.InfoContext(ctx, "stored snapshot", "target", target, "seq", snap.Seq, "etag", snap.ETag)
	return nil
}

// Targets returns the targets with a stored snapshot, in key order.
func (b *Bolt) Targets() ([]string, error) {
	var out []string
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketLatest)).ForEach(func(k, _ []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	return out, err
}

// Latest returns the most recent snapshot of target.
func (b *Bolt) Latest(target string) (Snapshot, error) {
	var snap Snapshot
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketLatest)).Get([]byte(target))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNoSnapshot, target)
		}
		return json.Unmarshal(v, &snap)
	})
	return snap, err
}

// Get returns snapshot seq of target.
func (b *Bolt) Get(target string, seq uint64) (Snapshot, error) {
	var snap Snapshot
	err := b.db.View(func(tx *bolt.Tx) error {
		hist := tx.Bucket([]byte(bucketHistory)).Bucket([]byte(target))
		if hist == nil {
			return fmt.Errorf("%w: %s", ErrNoSnapshot, target)
		}
		v := hist.Get(marshalSeq(seq))
		if v == nil {
			return fmt.Errorf("%w: %s #%d", ErrNoSnapshot, target, seq)
		}
		return json.Unmarshal(v, &snap)
	})
	return snap, err
}

// History returns all snapshots of target, oldest first, without their
// documents.
func (b *Bolt) History(target string) ([]Snapshot, error) {
	var out []Snapshot
	err := b.db.View(func(tx *bolt.Tx) error {
		hist := tx.Bucket([]byte(bucketHistory)).Bucket([]byte(target))
		if hist == nil {
			return nil
		}
		c := hist.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var s Snapshot
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("snapshot %s #%d: %w", target, unmarshalSeq(k), err)
			}
			s.Document = ""
			out = append(out, s)
		}
		return nil
	})
	return out, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
