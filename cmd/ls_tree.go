package cmd

import (
	"fmt"

	"github.com/KostasZigo/gogitstore/internal/inspect"
	"github.com/KostasZigo/gogitstore/internal/objects"
	"github.com/spf13/cobra"
)

var lsTreeCmd = &cobra.Command{
	Use:   "ls-tree [--name-only] [-r] <tree>",
	Short: "List the entries of a tree object",
	Long: `List the entries of a stored tree object in stored order.
Each line reads "<mode> <kind> <hash>\t<name>".

Examples:
  # List the top-level entries
  gogit ls-tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904

  # List every file beneath the tree, one path per line
  gogit ls-tree -r --name-only <tree>`,
	SilenceUsage: true,
	Args:         exactArgs(1, "tree"),
	RunE:         runLsTree,
}

var (
	nameOnlyFlag  bool
	recursiveFlag bool
)

func init() {
	rootCmd.AddCommand(lsTreeCmd)

	lsTreeCmd.Flags().BoolVar(&nameOnlyFlag, "name-only", false, "List only entry names")
	lsTreeCmd.Flags().BoolVarP(&recursiveFlag, "recursive", "r", false, "Recurse into subtrees")
}

// runLsTree prints the entries of the given tree.
func runLsTree(cmd *cobra.Command, args []string) error {
	id, err := objects.ParseObjectID(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	inspector := inspect.New(store, inspect.WithLogger(log))

	out := cmd.OutOrStdout()

	if recursiveFlag {
		entries, err := inspector.ListTreeRecursive(id)
		if err != nil {
			return err
		}
		for _, pathEntry := range entries {
			if nameOnlyFlag {
				fmt.Fprintln(out, pathEntry.Path)
				continue
			}
			entry := pathEntry.Entry
			fmt.Fprintf(out, "%s %s %s\t%s\n", entry.Mode(), entry.Mode().ObjectKind(), entry.ID(), pathEntry.Path)
		}
		return nil
	}

	entries, err := inspector.ListTree(id)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if nameOnlyFlag {
			fmt.Fprintln(out, entry.Name())
			continue
		}
		fmt.Fprintln(out, entry.String())
	}

	return nil
}
