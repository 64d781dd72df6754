package objects

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gogitstore/internal/codec"
	"github.com/KostasZigo/gogitstore/internal/constants"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var objectsRelativeFilePath string = filepath.Join(constants.Gogit, constants.Objects)

// IOErrorKind classifies a filesystem failure against the object store.
type IOErrorKind int

const (
	NotFound IOErrorKind = iota
	Permission
	Other
)

func (k IOErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Permission:
		return "permission denied"
	default:
		return "io error"
	}
}

// IOError reports a failed read or write of an object file.
type IOError struct {
	Op   string
	ID   ObjectID
	Path string
	Kind IOErrorKind
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s object %s at %s: %s: %v", e.Op, e.ID, e.Path, e.Kind, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func newIOError(op string, id ObjectID, path string, err error) *IOError {
	kind := Other
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = NotFound
	case errors.Is(err, fs.ErrPermission):
		kind = Permission
	}
	return &IOError{Op: op, ID: id, Path: path, Kind: kind, Err: err}
}

// ObjectStore manages storage of objects under .gogit/objects.
// It is the only component that knows the on-disk layout.
type ObjectStore struct {
	repoPath   string // Path to repository root
	codec      *codec.Codec
	strictSize bool
	logger     *zap.Logger
}

// StoreOption configures an ObjectStore.
type StoreOption func(*ObjectStore)

// WithCodec sets the compressor used by Store and Load.
func WithCodec(c *codec.Codec) StoreOption {
	return func(store *ObjectStore) {
		store.codec = c
	}
}

// WithStrictSize makes Load reject envelopes whose declared size differs from the payload.
func WithStrictSize(strict bool) StoreOption {
	return func(store *ObjectStore) {
		store.strictSize = strict
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(store *ObjectStore) {
		store.logger = logger
	}
}

func NewObjectStore(repoPath string, opts ...StoreOption) *ObjectStore {
	store := &ObjectStore{
		repoPath: repoPath,
		codec:    codec.Default(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// PathFor returns .gogit/objects/<first 2 chars>/<remaining 38> for id.
func (store *ObjectStore) PathFor(id ObjectID) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}
	return filepath.Join(store.repoPath, objectsRelativeFilePath, id.DirName(), id.FileName()), nil
}

// Write persists already-compressed object bytes.
// Returns nil if the object already exists; content is identical by construction.
func (store *ObjectStore) Write(id ObjectID, compressed []byte) error {
	objectFile, err := store.PathFor(id)
	if err != nil {
		return err
	}

	// Check if object already exists (content-addressable)
	_, err = os.Stat(objectFile)
	if err == nil {
		store.logger.Debug("object already exists", zap.Stringer("id", id))
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return newIOError("stat", id, objectFile, err)
	}

	// Create directory if it doesn't exist; a concurrent creator is harmless
	objectDir := filepath.Dir(objectFile)
	if err := os.MkdirAll(objectDir, constants.DirPerms); err != nil {
		return newIOError("create directory for", id, objectDir, err)
	}

	// Write to a temp file and rename so readers never see a partial object
	tmp, err := os.CreateTemp(objectDir, ".tmp-*")
	if err != nil {
		return newIOError("create temp file for", id, objectDir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressed); err != nil {
		return newIOError("write", id, objectFile, multierr.Combine(err, tmp.Close(), os.Remove(tmpName)))
	}
	if err := tmp.Chmod(constants.ObjectPerms); err != nil {
		return newIOError("chmod", id, objectFile, multierr.Combine(err, tmp.Close(), os.Remove(tmpName)))
	}
	if err := tmp.Close(); err != nil {
		return newIOError("close", id, objectFile, multierr.Append(err, os.Remove(tmpName)))
	}
	if err := os.Rename(tmpName, objectFile); err != nil {
		return newIOError("rename", id, objectFile, multierr.Append(err, os.Remove(tmpName)))
	}

	store.logger.Debug("object written",
		zap.Stringer("id", id),
		zap.Int("bytes", len(compressed)))
	return nil
}

// Read returns the compressed bytes stored for id.
func (store *ObjectStore) Read(id ObjectID) ([]byte, error) {
	objectFile, err := store.PathFor(id)
	if err != nil {
		return nil, err
	}

	compressedData, err := os.ReadFile(objectFile)
	if err != nil {
		return nil, newIOError("read", id, objectFile, err)
	}

	return compressedData, nil
}

// Exists checks if an object exists in storage
func (store *ObjectStore) Exists(id ObjectID) bool {
	objectFile, err := store.PathFor(id)
	if err != nil {
		return false
	}
	_, err = os.Stat(objectFile)
	return err == nil
}

// Store wraps, compresses and writes obj.
func (store *ObjectStore) Store(obj Object) error {
	compressedData, err := store.codec.Encode(obj.Data())
	if err != nil {
		return fmt.Errorf("failed to compress object %s: %w", obj.ID(), err)
	}

	if err := store.Write(obj.ID(), compressedData); err != nil {
		return err
	}

	store.logger.Debug("object stored",
		zap.Stringer("id", obj.ID()),
		zap.String("kind", string(obj.Kind())))
	return nil
}

// Load reads, decompresses and unwraps the object named by id.
func (store *ObjectStore) Load(id ObjectID) (*Envelope, error) {
	compressedData, err := store.Read(id)
	if err != nil {
		return nil, err
	}

	data, err := store.codec.Decode(compressedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress object %s: %w", id, err)
	}

	unwrap := Unwrap
	if store.strictSize {
		unwrap = UnwrapStrict
	}

	envelope, err := unwrap(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse object %s: %w", id, err)
	}

	return envelope, nil
}
