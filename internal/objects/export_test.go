package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/KostasZigo/gogitstore/internal/constants"
	"github.com/KostasZigo/gogitstore/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedID computes sha1("<kind> <len>\0<content>") independently of HashObject.
func expectedID(t *testing.T, kind Kind, content []byte) ObjectID {
	t.Helper()

	data := append([]byte(string(kind)+" "+strconv.Itoa(len(content))+"\x00"), content...)
	sum := sha1.Sum(data)
	return mustParseID(t, hex.EncodeToString(sum[:]))
}

// mustParseID parses a hex id and fails test on error.
func mustParseID(t *testing.T, s string) ObjectID {
	t.Helper()

	id, err := ParseObjectID(s)
	require.NoError(t, err, "Failed to parse object id %q", s)
	return id
}

// randomID returns a random valid object id.
func randomID(t *testing.T) ObjectID {
	t.Helper()
	return mustParseID(t, testutils.RandomHash())
}

// assertBlobID verifies blob id matches expected value for given content.
func assertBlobID(t *testing.T, blob *Blob, content []byte) {
	t.Helper()

	require.Equal(t, expectedID(t, KindBlob, content), blob.ID())
}

// assertBlobContent verifies blob stores exact content and correct size.
func assertBlobContent(t *testing.T, blob *Blob, expectedContent []byte) {
	t.Helper()

	require.Equal(t, len(expectedContent), blob.Size())
	require.Equal(t, string(expectedContent), string(blob.Content()))
}

// createTreeEntry creates tree entry and fails test on error.
func createTreeEntry(t *testing.T, mode FileMode, name string, id ObjectID) TreeEntry {
	t.Helper()

	entry, err := NewTreeEntry(mode, name, id)
	require.NoError(t, err, "Failed to create tree entry")

	return *entry
}

// newTestStore creates a repository with .gogit/objects and a store rooted at it.
func newTestStore(t *testing.T, opts ...StoreOption) (*ObjectStore, string) {
	t.Helper()

	repoPath := testutils.SetupTestRepoWithGogitDir(t)
	return NewObjectStore(repoPath, opts...), repoPath
}

// createAndStoreTree creates tree from entries, stores it, and returns tree.
func createAndStoreTree(t *testing.T, store *ObjectStore, entries []TreeEntry) *Tree {
	t.Helper()

	tree := NewTree(entries)
	require.NoError(t, store.Store(tree), "Failed to store tree")

	return tree
}

// writeRawObject compresses data as-is and writes it under id, bypassing envelope checks.
func writeRawObject(t *testing.T, store *ObjectStore, id ObjectID, data []byte) {
	t.Helper()

	compressed, err := store.codec.Encode(data)
	require.NoError(t, err, "Failed to compress raw object")
	require.NoError(t, store.Write(id, compressed), "Failed to write raw object")
}

// objectPath returns the on-disk path of id in repoPath.
func objectPath(repoPath string, id ObjectID) string {
	return filepath.Join(repoPath, constants.Gogit, constants.Objects, id.DirName(), id.FileName())
}

// assertTreeEntryEqual verifies two tree entries match.
func assertTreeEntryEqual(t *testing.T, actual, expected TreeEntry) {
	t.Helper()

	assert.Equal(t, expected.Name(), actual.Name(), "Entry name mismatch")
	assert.Equal(t, expected.ID(), actual.ID(), "Entry id mismatch")
	assert.Equal(t, expected.Mode(), actual.Mode(), "Entry mode mismatch")
}

// fileMode returns the permission bits of path.
func fileMode(t *testing.T, path string) os.FileMode {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err, "Failed to stat %s", path)
	return info.Mode().Perm()
}
