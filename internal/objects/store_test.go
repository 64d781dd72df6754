package objects

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KostasZigo/gogitstore/internal/codec"
	"github.com/KostasZigo/gogitstore/testutils"
	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectStore_PathFor(t *testing.T) {
	store, repoPath := newTestStore(t)
	id := mustParseID(t, "e88f7a929cd70b0274c4ea33b209c97fa845fdbc")

	path, err := store.PathFor(id)
	require.NoError(t, err, "PathFor failed")
	assert.Equal(t, filepath.Join(repoPath, ".gogit", "objects", "e8", "8f7a929cd70b0274c4ea33b209c97fa845fdbc"), path)
}

func TestObjectStore_PathFor_InvalidID(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.PathFor(ObjectID{})
	require.ErrorIs(t, err, ErrInvalidObjectID)
}

func TestObjectStore_Store(t *testing.T) {
	store, repoPath := newTestStore(t)
	blob := NewBlob([]byte("test content\n"))

	require.NoError(t, store.Store(blob), "Failed to store blob")

	testutils.AssertFileExists(t, objectPath(repoPath, blob.ID()))
}

func TestObjectStore_StoredFileIsReadOnly(t *testing.T) {
	testutils.SkipOnWindows(t)

	store, repoPath := newTestStore(t)
	blob := NewBlob([]byte("read only\n"))

	require.NoError(t, store.Store(blob), "Failed to store blob")

	assert.Equal(t, os.FileMode(0444), fileMode(t, objectPath(repoPath, blob.ID())))

	// No temp files are left next to the object
	entries, err := os.ReadDir(filepath.Dir(objectPath(repoPath, blob.ID())))
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), ".tmp-"), "Leftover temp file %s", entry.Name())
	}
}

func TestObjectStore_Compression(t *testing.T) {
	store, repoPath := newTestStore(t)

	// Use larger content to ensure compression is effective
	largeContent := bytes.Repeat([]byte("This is repeated content. "), 100)
	blob := NewBlob(largeContent)

	require.NoError(t, store.Store(blob), "Failed to store blob")

	compressedData, err := os.ReadFile(objectPath(repoPath, blob.ID()))
	require.NoError(t, err, "Failed to read stored object")

	originalSize := len(blob.Data())
	compressedSize := len(compressedData)
	assert.Less(t, compressedSize, originalSize, "Data doesn't appear to be compressed")

	t.Logf("Compression effective: %d bytes -> %d bytes (%.1f%% reduction)",
		originalSize, compressedSize, 100*(1-float64(compressedSize)/float64(originalSize)))
}

func TestObjectStore_WriteRead(t *testing.T) {
	store, _ := newTestStore(t)
	id := randomID(t)
	compressed := []byte("opaque compressed bytes")

	require.NoError(t, store.Write(id, compressed))

	read, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, compressed, read)
}

func TestObjectStore_StoreLoad_Blob(t *testing.T) {
	store, _ := newTestStore(t)
	content := []byte("hello world\n")
	blob := NewBlob(content)

	require.NoError(t, store.Store(blob))

	envelope, err := store.Load(blob.ID())
	require.NoError(t, err)

	assert.Equal(t, KindBlob, envelope.Kind)
	assert.Equal(t, len(content), envelope.Size)
	assert.Equal(t, content, envelope.Payload)
	assert.Equal(t, blob.ID(), HashObject(envelope.Kind, envelope.Payload))
}

func TestObjectStore_StoreLoad_Tree(t *testing.T) {
	store, _ := newTestStore(t)

	blob := NewBlob([]byte("package main\n"))
	require.NoError(t, store.Store(blob))

	tree := createAndStoreTree(t, store, []TreeEntry{
		createTreeEntry(t, ModeRegularFile, "main.go", blob.ID()),
		createTreeEntry(t, ModeDirectory, "pkg", NewTree(nil).ID()),
	})

	envelope, err := store.Load(tree.ID())
	require.NoError(t, err)
	require.Equal(t, KindTree, envelope.Kind)

	entries, err := ParseTree(envelope.Payload)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assertTreeEntryEqual(t, entries[0], tree.Entries()[0])
	assertTreeEntryEqual(t, entries[1], tree.Entries()[1])
}

func TestObjectStore_CustomCompressionLevel(t *testing.T) {
	c, err := codec.New(1)
	require.NoError(t, err)

	store, _ := newTestStore(t, WithCodec(c))
	blob := NewBlob(bytes.Repeat([]byte("abc"), 1000))
	require.NoError(t, store.Store(blob))

	// Any level is readable by a default store
	reader := NewObjectStore(store.repoPath)
	envelope, err := reader.Load(blob.ID())
	require.NoError(t, err)
	assert.Equal(t, blob.Content(), envelope.Payload)
}

func TestObjectStore_StoreIdempotent(t *testing.T) {
	store, repoPath := newTestStore(t)
	blob := NewBlob([]byte("test\n"))

	// Store twice, second time a debug log should appear
	require.NoError(t, store.Store(blob), "First store failed")
	require.NoError(t, store.Store(blob), "Second store failed")

	info, err := os.Stat(objectPath(repoPath, blob.ID()))
	require.NoError(t, err, "Object file should exist")
	assert.True(t, info.Mode().IsRegular(), "Object should be a regular file")

	entries, err := os.ReadDir(filepath.Dir(objectPath(repoPath, blob.ID())))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestObjectStore_Exists(t *testing.T) {
	store, _ := newTestStore(t)
	blob := NewBlob([]byte("test\n"))

	assert.False(t, store.Exists(blob.ID()), "Blob should not exist before storing")

	require.NoError(t, store.Store(blob), "Failed to store blob")

	assert.True(t, store.Exists(blob.ID()), "Blob should exist after storing")
	assert.False(t, store.Exists(ObjectID{}), "Invalid id should never exist")
}

func TestObjectStore_Read_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	id := randomID(t)

	_, err := store.Read(id)
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, NotFound, ioErr.Kind)
	assert.Equal(t, id, ioErr.ID)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = store.Load(id)
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, NotFound, ioErr.Kind)
}

func TestObjectStore_Load_CorruptFile(t *testing.T) {
	store, _ := newTestStore(t)
	id := randomID(t)

	require.NoError(t, store.Write(id, []byte("definitely not zlib")))

	_, err := store.Load(id)
	require.Error(t, err)

	var decodeErr *codec.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, codec.Corrupt, decodeErr.Kind)
}

func TestObjectStore_Load_BadEnvelope(t *testing.T) {
	store, _ := newTestStore(t)
	id := randomID(t)

	writeRawObject(t, store, id, []byte("commit 3\x00abc"))

	_, err := store.Load(id)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, UnknownKind, formatErr.Kind)
}

func TestObjectStore_Load_StrictSize(t *testing.T) {
	loose, _ := newTestStore(t)
	strict := NewObjectStore(loose.repoPath, WithStrictSize(true))
	id := randomID(t)

	writeRawObject(t, loose, id, []byte("blob 99\x00abc"))

	envelope, err := loose.Load(id)
	require.NoError(t, err)
	assert.Equal(t, 99, envelope.Size)

	_, err = strict.Load(id)
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, SizeMismatch, formatErr.Kind)
}

func TestObjectStore_Write_MkdirFails(t *testing.T) {
	store, repoPath := newTestStore(t)
	blob := NewBlob([]byte("content\n"))

	patches := gomonkey.ApplyFunc(os.MkdirAll, func(path string, perm os.FileMode) error {
		return fs.ErrPermission
	})
	defer patches.Reset()

	err := store.Store(blob)
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, Permission, ioErr.Kind)
	assert.Equal(t, "create directory for", ioErr.Op)

	patches.Reset()
	testutils.AssertFileNotExists(t, objectPath(repoPath, blob.ID()))
}
