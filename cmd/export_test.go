package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/KostasZigo/gogitstore/internal/objects"
	"github.com/KostasZigo/gogitstore/testutils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// createTestRootCmd creates fresh root command with the given subcommand.
// Flags and usage silencing left over from earlier executions are reset.
func createTestRootCmd(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	cmd.SilenceUsage = true

	testRootCmd := &cobra.Command{Use: "gogit"}
	testRootCmd.AddCommand(cmd)
	return testRootCmd
}

// captureStdout returns command stdout output as string.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr returns command stderr output as string.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// changeToRepoDir changes working directory to repo path and registers cleanup.
func changeToRepoDir(t *testing.T, repoPath string) {
	t.Helper()

	oldDir, err := os.Getwd()
	require.NoError(t, err, "Failed to get current directory")
	require.NoError(t, os.Chdir(repoPath), "Failed to change to directory %s", repoPath)

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}

// runCommand executes cmd with args under a fresh root and returns trimmed stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	testRootCmd := createTestRootCmd(cmd)
	stdout := captureStdout(testRootCmd)
	captureStderr(testRootCmd)

	testRootCmd.SetArgs(append([]string{cmd.Name()}, args...))
	err := testRootCmd.Execute()
	return strings.TrimRight(stdout.String(), "\n"), err
}

// mustRunCommand is runCommand that fails the test on error.
func mustRunCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()

	out, err := runCommand(t, cmd, args...)
	require.NoError(t, err, "%s %v failed", cmd.Name(), args)
	return out
}

// setupRepoWithBlob initializes a repository, changes into it and stores content as a blob.
func setupRepoWithBlob(t *testing.T, content []byte) (string, *objects.Blob) {
	t.Helper()

	repoPath := testutils.SetupTestRepoWithInit(t)
	changeToRepoDir(t, repoPath)

	blob := objects.NewBlob(content)
	require.NoError(t, objects.NewObjectStore(repoPath).Store(blob), "Failed to store blob")

	return repoPath, blob
}

// objectFile returns the loose object path for a hex hash.
func objectFile(repoPath, hash string) string {
	return testutils.ObjectFilePath(repoPath, hash)
}
