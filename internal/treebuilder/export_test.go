package treebuilder

import (
	"testing"

	"github.com/KostasZigo/gogitstore/internal/objects"
	"github.com/KostasZigo/gogitstore/testutils"
	"github.com/stretchr/testify/require"
)

// newTestBuilder creates an initialized repository and a builder writing into it.
func newTestBuilder(t *testing.T) (*Builder, *objects.ObjectStore, string) {
	t.Helper()

	repoPath := testutils.SetupTestRepoWithInit(t)
	store := objects.NewObjectStore(repoPath)
	return New(store), store, repoPath
}

// mustBuild runs Build and fails the test on error.
func mustBuild(t *testing.T, b *Builder, path string) objects.ObjectID {
	t.Helper()

	id, err := b.Build(path)
	require.NoError(t, err, "Build(%s) failed", path)
	return id
}

// loadTreeEntries loads and parses the tree stored under id.
func loadTreeEntries(t *testing.T, store *objects.ObjectStore, id objects.ObjectID) []objects.TreeEntry {
	t.Helper()

	envelope, err := store.Load(id)
	require.NoError(t, err, "Failed to load tree %s", id)
	require.Equal(t, objects.KindTree, envelope.Kind, "Expected %s to be a tree", id)

	entries, err := objects.ParseTree(envelope.Payload)
	require.NoError(t, err, "Failed to parse tree %s", id)
	return entries
}

// findEntry returns the entry called name, failing the test if absent.
func findEntry(t *testing.T, entries []objects.TreeEntry, name string) objects.TreeEntry {
	t.Helper()

	for _, entry := range entries {
		if entry.Name() == name {
			return entry
		}
	}
	require.FailNow(t, "entry not found", "Entry %q not found", name)
	return objects.TreeEntry{}
}

// entryNames lists entry names in stored order.
func entryNames(entries []objects.TreeEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
