package cmd

import (
	"fmt"

	"github.com/KostasZigo/gogitstore/internal/treebuilder"
	"github.com/spf13/cobra"
)

var writeTreeCmd = &cobra.Command{
	Use:   "write-tree [path]",
	Short: "Store a directory snapshot as tree and blob objects",
	Long: `Walk a directory (the current directory by default), store every file as a blob
and every directory as a tree, and print the hash of the top-level tree.
The .gogit directory is never included.

Examples:
  # Snapshot the working directory
  gogit write-tree

  # Snapshot a subdirectory without printing the hash
  gogit write-tree -q src`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runWriteTree,
}

var writeTreeQuietFlag bool

func init() {
	rootCmd.AddCommand(writeTreeCmd)

	writeTreeCmd.Flags().BoolVarP(&writeTreeQuietFlag, "quiet", "q", false, "Do not print the tree hash")
}

// runWriteTree builds and stores the tree for the requested directory.
func runWriteTree(cmd *cobra.Command, args []string) error {
	dirPath := "."
	if len(args) > 0 {
		dirPath = args[0]
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	id, err := treebuilder.New(store, treebuilder.WithLogger(log)).Build(dirPath)
	if err != nil {
		return err
	}

	if !writeTreeQuietFlag {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
