// Package inspect implements the read side of the object store: showing
// an object's payload and listing tree entries.
package inspect

import (
	"bytes"
	"fmt"
	"path"

	"github.com/KostasZigo/gogitstore/internal/objects"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// DefaultCacheSize is the number of decoded objects kept in memory.
const DefaultCacheSize = 256

// Inspector reads objects through an ObjectStore, caching decoded envelopes.
// Objects are immutable, so cached entries never go stale.
type Inspector struct {
	store     *objects.ObjectStore
	cache     *lru.Cache[objects.ObjectID, *objects.Envelope]
	cacheSize int
	logger    *zap.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(i *Inspector) {
		i.logger = logger
	}
}

// WithCacheSize sets how many decoded objects are cached. Non-positive sizes are ignored.
func WithCacheSize(size int) Option {
	return func(i *Inspector) {
		if size > 0 {
			i.cacheSize = size
		}
	}
}

func New(store *objects.ObjectStore, opts ...Option) *Inspector {
	i := &Inspector{
		store:     store,
		cacheSize: DefaultCacheSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}

	i.cache, _ = lru.New[objects.ObjectID, *objects.Envelope](i.cacheSize) // no error, size is positive
	return i
}

// Load returns the decoded envelope of id. The returned envelope is a copy
// the caller may modify.
func (i *Inspector) Load(id objects.ObjectID) (*objects.Envelope, error) {
	envelope, ok := i.cache.Get(id)
	if ok {
		i.logger.Debug("object cache hit", zap.Stringer("id", id))
	} else {
		var err error
		if envelope, err = i.store.Load(id); err != nil {
			return nil, err
		}
		i.cache.Add(id, envelope)
	}

	return &objects.Envelope{
		Kind:    envelope.Kind,
		Size:    envelope.Size,
		Payload: bytes.Clone(envelope.Payload),
	}, nil
}

// ShowObject returns the payload of id whatever its kind.
func (i *Inspector) ShowObject(id objects.ObjectID) ([]byte, error) {
	envelope, err := i.Load(id)
	if err != nil {
		return nil, err
	}
	return envelope.Payload, nil
}

// Kind returns the kind recorded in the header of id.
func (i *Inspector) Kind(id objects.ObjectID) (objects.Kind, error) {
	envelope, err := i.Load(id)
	if err != nil {
		return "", err
	}
	return envelope.Kind, nil
}

// Size returns the payload size declared in the header of id.
func (i *Inspector) Size(id objects.ObjectID) (int, error) {
	envelope, err := i.Load(id)
	if err != nil {
		return 0, err
	}
	return envelope.Size, nil
}

// ListTree returns the entries of tree id in stored order.
// Fails with a NotATree FormatError when id names a blob.
func (i *Inspector) ListTree(id objects.ObjectID) ([]objects.TreeEntry, error) {
	envelope, err := i.Load(id)
	if err != nil {
		return nil, err
	}

	if envelope.Kind != objects.KindTree {
		return nil, &objects.FormatError{
			Kind:   objects.NotATree,
			Header: fmt.Sprintf("%s %d", envelope.Kind, envelope.Size),
			Detail: fmt.Sprintf("object %s is a %s", id, envelope.Kind),
		}
	}

	entries, err := objects.ParseTree(envelope.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tree %s: %w", id, err)
	}

	return entries, nil
}

// PathEntry is a tree entry together with its slash-separated path from the listed root.
type PathEntry struct {
	Path  string
	Entry objects.TreeEntry
}

// ListTreeRecursive walks tree id depth-first and returns every non-tree
// entry beneath it, in stored order.
func (i *Inspector) ListTreeRecursive(id objects.ObjectID) ([]PathEntry, error) {
	var result []PathEntry
	if err := i.walk(id, "", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (i *Inspector) walk(id objects.ObjectID, prefix string, result *[]PathEntry) error {
	entries, err := i.ListTree(id)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		entryPath := path.Join(prefix, entry.Name())

		if entry.IsDirectory() {
			if err := i.walk(entry.ID(), entryPath, result); err != nil {
				return err
			}
			continue
		}

		*result = append(*result, PathEntry{Path: entryPath, Entry: entry})
	}

	return nil
}
