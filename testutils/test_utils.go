package testutils

import (
	"crypto/rand"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/KostasZigo/gogitstore/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RandomString generates a random hex string of n bytes
func RandomString(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// RandomHash generates a random 40-character SHA-1 hash
func RandomHash() string {
	return RandomString(constants.HashByteLength)
}

// SetupTestRepoWithGogitDir creates a temporary directory with .gogit/objects structure.
// This is useful for tests that need the repository structure but not full initialization.
func SetupTestRepoWithGogitDir(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	gogitDir := filepath.Join(repoPath, constants.Gogit, constants.Objects)

	require.NoError(t, os.MkdirAll(gogitDir, constants.DirPerms), "Failed to create %s/%s", constants.Gogit, constants.Objects)

	return repoPath
}

// SetupTestRepoWithInit creates a fully initialized .gogit repository structure.
// This includes objects/, refs/heads/, refs/tags/, and HEAD file.
func SetupTestRepoWithInit(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	gogitDir := filepath.Join(repoPath, constants.Gogit)

	// Create directory structure
	dirs := []string{
		filepath.Join(gogitDir, constants.Objects),
		filepath.Join(gogitDir, constants.Refs, constants.Heads),
		filepath.Join(gogitDir, constants.Refs, constants.Tags),
	}

	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(dir, constants.DirPerms), "Failed to create directory %s", dir)
	}

	// Create HEAD file
	headPath := filepath.Join(gogitDir, constants.Head)
	headContent := []byte(constants.DefaultRefPrefix + constants.DefaultBranch + "\n")
	require.NoError(t, os.WriteFile(headPath, headContent, constants.FilePerms), "Failed to create %s file", constants.Head)

	return repoPath
}

// CreateTestFile creates a file with given content in the specified directory.
// Returns the full path to the created file.
func CreateTestFile(t *testing.T, dir, filename string, content []byte) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	require.NoError(t, os.WriteFile(filePath, content, constants.FilePerms), "Failed to create test file %s", filename)

	return filePath
}

// CreateExecutableFile creates a file with the owner execute bit set.
func CreateExecutableFile(t *testing.T, dir, filename string, content []byte) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	require.NoError(t, os.WriteFile(filePath, content, 0755), "Failed to create executable file %s", filename)
	// WriteFile permissions are filtered by umask
	require.NoError(t, os.Chmod(filePath, 0755), "Failed to chmod executable file %s", filename)

	return filePath
}

// CreateTestDir creates a directory (and parents) under dir.
func CreateTestDir(t *testing.T, dir, name string) string {
	t.Helper()

	dirPath := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(dirPath, constants.DirPerms), "Failed to create test directory %s", name)

	return dirPath
}

// CreateTestSymlink creates a symbolic link named name pointing at target.
// Skips the test on platforms without unprivileged symlinks.
func CreateTestSymlink(t *testing.T, dir, name, target string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on windows")
	}

	linkPath := filepath.Join(dir, name)
	require.NoError(t, os.Symlink(target, linkPath), "Failed to create symlink %s -> %s", name, target)

	return linkPath
}

// SkipOnWindows skips tests relying on POSIX permission bits.
func SkipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("test relies on POSIX file modes")
	}
}

// AssertFileExists checks that a file exists at the given path.
// Fails the test if the file doesn't exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	_, err := os.Stat(path)
	assert.NoError(t, err, "Expected file to exist at %s", path)
}

// AssertFileNotExists checks that a file does NOT exist at the given path.
// Fails the test if the file exists.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist, "Expected file to NOT exist at %s", path)
}

// AssertDirExists checks that a directory exists at the given path.
// Fails the test if the directory doesn't exist.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if !assert.NoError(t, err, "Expected directory to exist at %s", path) {
		return
	}
	assert.True(t, info.IsDir(), "Expected %s to be a directory, but it's a file", path)
}

// AssertRepositoryStructure validates complete .gogit directory structure.
// Verifies objects/, refs/heads/, refs/tags/, config exist and HEAD contains correct branch reference.
func AssertRepositoryStructure(t *testing.T, repoPath string) {
	t.Helper()

	gogitDir := filepath.Join(repoPath, constants.Gogit)
	AssertDirExists(t, gogitDir)

	expectedDirs := []string{
		constants.Objects,
		constants.Refs,
		filepath.Join(constants.Refs, constants.Heads),
		filepath.Join(constants.Refs, constants.Tags),
	}
	for _, dir := range expectedDirs {
		AssertDirExists(t, filepath.Join(gogitDir, dir))
	}

	AssertFileExists(t, filepath.Join(gogitDir, constants.Config))

	headPath := filepath.Join(gogitDir, constants.Head)
	AssertFileExists(t, headPath)

	content, err := os.ReadFile(headPath)
	require.NoError(t, err, "Failed to read %s file", constants.Head)
	assert.Equal(t, constants.DefaultRefPrefix+constants.DefaultBranch+"\n", string(content), "%s content", constants.Head)
}

// ObjectFilePath returns the loose object path for a hex id inside repoPath.
func ObjectFilePath(repoPath, hexID string) string {
	return filepath.Join(repoPath, constants.Gogit, constants.Objects,
		hexID[:constants.HashDirPrefixLength], hexID[constants.HashDirPrefixLength:])
}
