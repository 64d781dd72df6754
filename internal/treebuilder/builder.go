// Package treebuilder snapshots a directory into blob and tree objects.
package treebuilder

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gogitstore/internal/constants"
	"github.com/KostasZigo/gogitstore/internal/objects"
	"go.uber.org/zap"
)

// BuildError reports the filesystem path at which a build failed.
type BuildError struct {
	Path string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("failed to build tree at %s: %v", e.Path, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Builder writes every file and directory under a path into an ObjectStore.
type Builder struct {
	store  *objects.ObjectStore
	logger *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

func New(store *objects.ObjectStore, opts ...Option) *Builder {
	b := &Builder{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build stores the tree for the directory at path and all objects beneath it,
// returning the root tree id. Objects written before a failure are left in place.
func (b *Builder) Build(path string) (objects.ObjectID, error) {
	info, err := os.Stat(path)
	if err != nil {
		return objects.ObjectID{}, &BuildError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return objects.ObjectID{}, &BuildError{Path: path, Err: fmt.Errorf("not a directory")}
	}

	return b.buildDir(path)
}

func (b *Builder) buildDir(dir string) (objects.ObjectID, error) {
	// ReadDir returns entries sorted by name and does not follow symlinks
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return objects.ObjectID{}, &BuildError{Path: dir, Err: err}
	}

	entries := make([]objects.TreeEntry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		childPath := filepath.Join(dir, dirEntry.Name())

		if dirEntry.Name() == constants.Gogit {
			b.logger.Debug("skipping metadata directory", zap.String("path", childPath))
			continue
		}

		mode, id, ok, err := b.buildEntry(childPath, dirEntry)
		if err != nil {
			return objects.ObjectID{}, err
		}
		if !ok {
			continue
		}

		entry, err := objects.NewTreeEntry(mode, dirEntry.Name(), id)
		if err != nil {
			return objects.ObjectID{}, &BuildError{Path: childPath, Err: err}
		}
		entries = append(entries, *entry)

		b.logger.Debug("tree entry recorded",
			zap.String("path", childPath),
			zap.String("mode", string(mode)),
			zap.Stringer("id", id))
	}

	tree := objects.NewTree(entries)
	if err := b.store.Store(tree); err != nil {
		return objects.ObjectID{}, &BuildError{Path: dir, Err: err}
	}

	return tree.ID(), nil
}

// buildEntry stores the object for one directory child.
// ok is false for file types that have no tree representation.
func (b *Builder) buildEntry(path string, dirEntry fs.DirEntry) (objects.FileMode, objects.ObjectID, bool, error) {
	switch fileType := dirEntry.Type(); {
	case fileType.IsDir():
		id, err := b.buildDir(path)
		return objects.ModeDirectory, id, err == nil, err

	case fileType&fs.ModeSymlink != 0:
		blob, err := objects.NewSymlinkBlob(path)
		if err != nil {
			return "", objects.ObjectID{}, false, &BuildError{Path: path, Err: err}
		}
		id, err := b.storeBlob(path, blob)
		return objects.ModeSymlink, id, err == nil, err

	case fileType.IsRegular():
		info, err := dirEntry.Info()
		if err != nil {
			return "", objects.ObjectID{}, false, &BuildError{Path: path, Err: err}
		}

		mode := objects.ModeRegularFile
		if info.Mode().Perm()&0111 != 0 {
			mode = objects.ModeExecutable
		}

		blob, err := objects.NewBlobFromFile(path)
		if err != nil {
			return "", objects.ObjectID{}, false, &BuildError{Path: path, Err: err}
		}
		id, err := b.storeBlob(path, blob)
		return mode, id, err == nil, err

	default:
		b.logger.Debug("skipping unsupported file type",
			zap.String("path", path),
			zap.Stringer("type", fileType))
		return "", objects.ObjectID{}, false, nil
	}
}

func (b *Builder) storeBlob(path string, blob *objects.Blob) (objects.ObjectID, error) {
	if err := b.store.Store(blob); err != nil {
		return objects.ObjectID{}, &BuildError{Path: path, Err: err}
	}
	return blob.ID(), nil
}
